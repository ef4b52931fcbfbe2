package grid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coinwalk/walk"
)

// Hand-built batch: three trials over a 10-position track.
// Trial 0 lands on 2, 4, 7; trial 1 on 1, 4, 5; trial 2 on 3, 9 (12 is off
// the board and must be discarded).
func fixtureGrid(t *testing.T) *Grid {
	t.Helper()
	trials := []walk.Trial{
		{2, 4, 7},
		{1, 4, 5},
		{3, 9, 12},
	}
	return Build(trials, 10)
}

func TestBuild(t *testing.T) {
	t.Run("marks exactly the landed positions", func(t *testing.T) {
		g := fixtureGrid(t)

		wantHits := map[int]int{1: 1, 2: 1, 3: 1, 4: 2, 5: 1, 6: 0, 7: 1, 8: 0, 9: 1, 10: 0}
		for position, want := range wantHits {
			require.Equal(t, want, g.HitCount(position), "Wrong hit count at position %d", position)
		}
	})

	t.Run("discards positions beyond the board", func(t *testing.T) {
		g := fixtureGrid(t)

		total := 0
		for p := 1; p <= g.MaxPosition(); p++ {
			total += g.HitCount(p)
		}
		require.Equal(t, 8, total, "Position 12 must not be counted anywhere")
	})

	t.Run("unreached rows are all-false, not an error", func(t *testing.T) {
		g := Build([]walk.Trial{{1, 2, 3}}, 100)

		for p := 4; p <= 100; p++ {
			require.Zero(t, g.HitCount(p), "Row %d should be empty", p)
		}
	})

	t.Run("parallel build matches serial build", func(t *testing.T) {
		trials := walk.NewSampler(6, 30, walk.WithSeed(11), walk.WithGoroutines(1)).Sample(1000)

		serial := Build(trials, 50, WithGoroutines(1))
		parallel := Build(trials, 50, WithGoroutines(8))

		for p := 1; p <= 50; p++ {
			require.Equal(t, serial.HitCount(p), parallel.HitCount(p),
				"Sharded build should be a union of disjoint trial ranges (position %d)", p)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		require.Panics(t, func() { Build(nil, 10) })
		require.Panics(t, func() { Build([]walk.Trial{{1}}, 0) })
	})
}

func TestGridCounts(t *testing.T) {
	t.Run("any-hit is the per-trial OR", func(t *testing.T) {
		g := fixtureGrid(t)

		require.Equal(t, 2, g.AnyHitCount([]int{4}), "Trials 0 and 1 land on 4")
		require.Equal(t, 3, g.AnyHitCount([]int{4, 9}), "Trial 2 adds position 9")
		require.Equal(t, 1, g.AnyHitCount([]int{2, 7}), "Both hits are the same trial")
	})

	t.Run("all-hit is the per-trial AND", func(t *testing.T) {
		g := fixtureGrid(t)

		require.Equal(t, 1, g.AllHitCount([]int{2, 4, 7}), "Only trial 0 lands on all three")
		require.Equal(t, 0, g.AllHitCount([]int{1, 2}), "No trial lands on both")
		require.Equal(t, g.HitCount(4), g.AllHitCount([]int{4}), "Single position reduces to the marginal")
	})

	t.Run("marginals align with the exact vector's indexing", func(t *testing.T) {
		g := fixtureGrid(t)

		marginals := g.Marginals()

		require.Len(t, marginals, 11)
		require.Equal(t, 1.0, marginals[0], "Start position is certain")
		require.InDelta(t, 2.0/3.0, marginals[4], 1e-12)
	})

	t.Run("rejects positions outside the grid", func(t *testing.T) {
		g := fixtureGrid(t)

		require.Panics(t, func() { g.HitCount(0) })
		require.Panics(t, func() { g.HitCount(11) })
		require.Panics(t, func() { g.AnyHitCount(nil) })
		require.Panics(t, func() { g.AllHitCount([]int{}) })
	})
}

func TestPairTable(t *testing.T) {
	t.Run("union identity matches a direct grid scan exactly", func(t *testing.T) {
		trials := walk.NewSampler(6, 20, walk.WithSeed(23), walk.WithGoroutines(2)).Sample(5000)
		g := Build(trials, 20)

		table := g.PairTable(20)

		for a := 1; a <= 20; a++ {
			for b := a + 1; b <= 20; b++ {
				require.Equal(t, g.AnyHitCount([]int{a, b}), table.UnionCount(a, b),
					"countA + countB - countAB must equal the scanned union for {%d,%d}", a, b)
			}
		}
	})

	t.Run("intersection is symmetric", func(t *testing.T) {
		g := fixtureGrid(t)
		table := g.PairTable(10)

		require.Equal(t, table.IntersectionCount(4, 7), table.IntersectionCount(7, 4))
		require.Equal(t, 1, table.IntersectionCount(2, 4), "Trial 0 lands on both 2 and 4")
		require.Equal(t, 0, table.IntersectionCount(1, 2), "Different trials")
	})

	t.Run("rejects a ceiling outside the grid", func(t *testing.T) {
		g := fixtureGrid(t)

		require.Panics(t, func() { g.PairTable(11) })
	})
}
