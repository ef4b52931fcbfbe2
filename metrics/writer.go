package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// RunConfig is the configuration snapshot persisted alongside results.
type RunConfig struct {
	MaxPosition   int
	FaceCount     int
	NumMarkers    int
	TrialCount    int
	StepBudget    int
	SearchCeiling int
	Mode          string
	Seed          uint64
	Goroutines    int
}

// PlacementRecord is one ranked strategy row.
type PlacementRecord struct {
	Rank        int
	Positions   []int
	Probability float64
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subfolder under root for one run's results.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteRunConfig(config RunConfig) error {
	// Create a file
	path := filepath.Join(w.baseDir, "run_config.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create run config file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"max_position", "face_count", "num_markers", "trial_count",
		"step_budget", "search_ceiling", "mode", "seed", "goroutines"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write run config header: %w", err)
	}

	row := []string{
		strconv.Itoa(config.MaxPosition),
		strconv.Itoa(config.FaceCount),
		strconv.Itoa(config.NumMarkers),
		strconv.Itoa(config.TrialCount),
		strconv.Itoa(config.StepBudget),
		strconv.Itoa(config.SearchCeiling),
		config.Mode,
		strconv.FormatUint(config.Seed, 10),
		strconv.Itoa(config.Goroutines),
	}
	err = writer.Write(row)
	if err != nil {
		return fmt.Errorf("failed to write run config row: %w", err)
	}

	return nil
}

func (w *Writer) WritePlacements(records []PlacementRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "placements.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create placements file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"rank", "positions", "probability"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write placements header: %w", err)
	}

	// Write each row
	for _, record := range records {
		positions := make([]string, len(record.Positions))
		for i, p := range record.Positions {
			positions[i] = strconv.Itoa(p)
		}
		row := []string{
			strconv.Itoa(record.Rank),
			strings.Join(positions, " "),
			strconv.FormatFloat(record.Probability, 'f', 6, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write placement row: %w", err)
		}
	}

	return nil
}
