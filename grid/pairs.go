package grid

import "math/bits"

// PairTable precomputes per-position hit counts and a position-by-position
// co-occurrence matrix for positions 1..ceiling. Any pair's union count then
// follows from the identity |A or B| = |A| + |B| - |A and B| in O(1), which
// turns two-marker scoring from a per-pair grid rescan into a table lookup.
//
// The identity has no cheap extension past pairs; larger strategies go back
// to the grid's word-wise scans.
type PairTable struct {
	trials int
	counts []int
	inter  [][]int // inter[i][j], j <= i, count of trials hitting both i+1 and j+1
}

// PairTable builds the counts for positions up to ceiling, which must not
// exceed the grid's max position.
func (g *Grid) PairTable(ceiling int) *PairTable {
	g.check(ceiling)

	counts := make([]int, ceiling)
	inter := make([][]int, ceiling)
	for i := 0; i < ceiling; i++ {
		counts[i] = g.HitCount(i + 1)

		inter[i] = make([]int, i+1)
		for j := 0; j <= i; j++ {
			count := 0
			for w := 0; w < g.words; w++ {
				count += bits.OnesCount64(g.rows[i][w] & g.rows[j][w])
			}
			inter[i][j] = count
		}
	}

	return &PairTable{trials: g.trials, counts: counts, inter: inter}
}

func (pt *PairTable) HitCount(position int) int {
	return pt.counts[position-1]
}

// IntersectionCount returns the number of trials that landed on both a and b.
func (pt *PairTable) IntersectionCount(a, b int) int {
	if a < b {
		a, b = b, a
	}
	return pt.inter[a-1][b-1]
}

// UnionCount returns the number of trials that landed on a or b (or both).
func (pt *PairTable) UnionCount(a, b int) int {
	return pt.counts[a-1] + pt.counts[b-1] - pt.IntersectionCount(a, b)
}

// UnionProbability returns UnionCount as an empirical frequency.
func (pt *PairTable) UnionProbability(a, b int) float64 {
	return float64(pt.UnionCount(a, b)) / float64(pt.trials)
}
