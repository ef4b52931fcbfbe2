// Package grid converts a batch of trial walks into a position-indexed
// occupancy structure: for each track position and trial, whether the walk
// ever landed exactly there.
//
// The layout is a transposed dense bitset, one word-aligned row per position
// with one bit per trial. Rows are built once, then read-only; scoring a set
// of positions is a word-wise OR/AND across rows followed by a popcount,
// never a per-trial scan.
package grid

import (
	"math/bits"
	"runtime"
	"sync"

	"coinwalk/walk"
)

type Option func(o *builder)

type builder struct {
	goroutines int
}

func WithGoroutines(goroutines int) Option {
	return func(b *builder) {
		if goroutines > 0 {
			b.goroutines = goroutines
		}
	}
}

// Grid is the immutable occupancy matrix for one batch of trials.
type Grid struct {
	maxPosition int
	trials      int
	words       int
	rows        [][]uint64 // rows[p-1] bit t set iff trial t landed on position p
}

// Build marks, for every trial, each cumulative position at or below
// maxPosition. Positions beyond maxPosition are discarded; a position no
// trial reaches keeps an all-false row, which is correct, not an error.
//
// Construction is sharded by trial range on 64-trial boundaries so workers
// never share a word, and the grid is published only once fully built.
func Build(trials []walk.Trial, maxPosition int, options ...Option) *Grid {
	if maxPosition <= 0 {
		panic("Max position must be positive")
	}
	if len(trials) == 0 {
		panic("Must provide at least one trial")
	}

	b := &builder{goroutines: runtime.GOMAXPROCS(0)}
	for _, option := range options {
		option(b)
	}

	words := (len(trials) + 63) / 64
	backing := make([]uint64, maxPosition*words)
	rows := make([][]uint64, maxPosition)
	for p := range rows {
		rows[p] = backing[p*words : (p+1)*words]
	}

	g := &Grid{
		maxPosition: maxPosition,
		trials:      len(trials),
		words:       words,
		rows:        rows,
	}

	// Whole words per worker so no two workers touch the same word
	wordsPerWorker := (words + b.goroutines - 1) / b.goroutines

	var wg sync.WaitGroup
	for w := 0; w < words; w += wordsPerWorker {
		lo := w * 64
		hi := (w + wordsPerWorker) * 64
		if hi > len(trials) {
			hi = len(trials)
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()

			for t := lo; t < hi; t++ {
				for _, position := range trials[t] {
					if position > maxPosition {
						break // Cumulative sums strictly increase
					}
					g.rows[position-1][t>>6] |= 1 << (uint(t) & 63)
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	return g
}

func (g *Grid) TrialCount() int { return g.trials }

func (g *Grid) MaxPosition() int { return g.maxPosition }

// Row returns the occupancy bitset for a position in [1, maxPosition].
// Callers must treat it as read-only.
func (g *Grid) Row(position int) []uint64 {
	g.check(position)
	return g.rows[position-1]
}

// HitCount returns the number of trials that landed exactly on position.
func (g *Grid) HitCount(position int) int {
	g.check(position)
	count := 0
	for _, word := range g.rows[position-1] {
		count += bits.OnesCount64(word)
	}
	return count
}

// Marginal returns the empirical probability that a trial lands on position.
func (g *Grid) Marginal(position int) float64 {
	return float64(g.HitCount(position)) / float64(g.trials)
}

// Marginals returns the empirical landing probability for every position
// 0..maxPosition. Index 0 is the guaranteed start, fixed at 1, so the vector
// aligns with exact.LandingProbabilities for comparison.
func (g *Grid) Marginals() []float64 {
	marginals := make([]float64, g.maxPosition+1)
	marginals[0] = 1
	for p := 1; p <= g.maxPosition; p++ {
		marginals[p] = g.Marginal(p)
	}
	return marginals
}

// AnyHitCount returns the number of trials that landed on at least one of the
// given positions: per-word OR across rows, then popcount.
func (g *Grid) AnyHitCount(positions []int) int {
	if len(positions) == 0 {
		panic("Must provide at least one position")
	}
	for _, p := range positions {
		g.check(p)
	}

	count := 0
	for w := 0; w < g.words; w++ {
		var acc uint64
		for _, p := range positions {
			acc |= g.rows[p-1][w]
		}
		count += bits.OnesCount64(acc)
	}
	return count
}

// AllHitCount returns the number of trials that landed on every one of the
// given positions: per-word AND across rows, then popcount.
func (g *Grid) AllHitCount(positions []int) int {
	if len(positions) == 0 {
		panic("Must provide at least one position")
	}
	for _, p := range positions {
		g.check(p)
	}

	count := 0
	for w := 0; w < g.words; w++ {
		acc := g.rows[positions[0]-1][w]
		for _, p := range positions[1:] {
			acc &= g.rows[p-1][w]
		}
		count += bits.OnesCount64(acc)
	}
	return count
}

func (g *Grid) check(position int) {
	if position < 1 || position > g.maxPosition {
		panic("Position outside grid")
	}
}
