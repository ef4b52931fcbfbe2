package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Run("creates a timestamped run directory", func(t *testing.T) {
		root := t.TempDir()

		writer, err := NewWriter(root)

		require.NoError(t, err)
		require.DirExists(t, writer.BaseDir())
		require.Equal(t, root, filepath.Dir(writer.BaseDir()))
	})

	t.Run("persists the run configuration", func(t *testing.T) {
		writer, err := NewWriter(t.TempDir())
		require.NoError(t, err)

		err = writer.WriteRunConfig(RunConfig{
			MaxPosition:   50,
			FaceCount:     6,
			NumMarkers:    3,
			TrialCount:    200000,
			StepBudget:    46,
			SearchCeiling: 50,
			Mode:          "any",
			Seed:          42,
			Goroutines:    8,
		})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(writer.BaseDir(), "run_config.csv"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		require.Len(t, lines, 2, "Header plus one config row")
		require.Equal(t, "50,6,3,200000,46,50,any,42,8", lines[1])
	})

	t.Run("persists ranked placements in order", func(t *testing.T) {
		writer, err := NewWriter(t.TempDir())
		require.NoError(t, err)

		err = writer.WritePlacements([]PlacementRecord{
			{Rank: 1, Positions: []int{4, 5, 6}, Probability: 0.794},
			{Rank: 2, Positions: []int{5, 6, 7}, Probability: 0.76},
		})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(writer.BaseDir(), "placements.csv"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		require.Equal(t, "rank,positions,probability", lines[0])
		require.Equal(t, "1,4 5 6,0.794000", lines[1])
		require.Equal(t, "2,5 6 7,0.760000", lines[2])
	})
}

func TestCollector(t *testing.T) {
	t.Run("accumulates counters", func(t *testing.T) {
		collector := NewCollector()
		collector.Start(4)
		collector.AddTrials(1000)
		collector.AddTrials(500)
		collector.AddStrategies(56)

		metric := collector.Complete()

		require.Equal(t, 4, metric.Goroutines)
		require.Equal(t, 1500, metric.Trials)
		require.Equal(t, 56, metric.Strategies)
		require.GreaterOrEqual(t, metric.Duration.Nanoseconds(), int64(0))
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		collector := NewDummyCollector()
		collector.Start(4)
		collector.AddTrials(1000)
		collector.AddStrategies(10)

		require.Equal(t, RunMetric{}, collector.Complete())
	})
}
