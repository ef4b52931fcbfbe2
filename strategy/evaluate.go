package strategy

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat/combin"

	"coinwalk/grid"
	"coinwalk/metrics"
)

// jobBatch bounds how many candidate strategies are in flight per channel send
const jobBatch = 256

type Option func(e *Evaluator)

func WithGoroutines(goroutines int) Option {
	return func(e *Evaluator) {
		if goroutines > 0 {
			e.goroutines = goroutines
		}
	}
}

func WithConstraints(constraints ...Constraint) Option {
	return func(e *Evaluator) {
		e.constraints = append(e.constraints, constraints...)
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(e *Evaluator) {
		if collector != nil {
			e.collector = collector
		}
	}
}

// Evaluator scores strategies against an immutable occupancy grid. Scoring is
// a pure read of the grid, so strategies are evaluated concurrently without
// locking.
type Evaluator struct {
	grid        *grid.Grid
	mode        Mode
	goroutines  int
	constraints []Constraint
	collector   metrics.Collector
}

func NewEvaluator(g *grid.Grid, mode Mode, options ...Option) *Evaluator {
	e := &Evaluator{ // Default values
		grid:       g,
		mode:       mode,
		goroutines: runtime.GOMAXPROCS(0),
		collector:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Score returns the empirical success probability of one strategy. Any-hit is
// the per-trial logical OR across the strategy's positions, all-hit the
// logical AND; both are computed from the grid, never from per-position
// marginals, because positions within a trial are correlated.
func (e *Evaluator) Score(positions []int) float64 {
	switch e.mode {
	case AllHit:
		return float64(e.grid.AllHitCount(positions)) / float64(e.grid.TrialCount())
	default:
		return float64(e.grid.AnyHitCount(positions)) / float64(e.grid.TrialCount())
	}
}

// Rank scores every combination of k distinct positions in [1, ceiling] that
// satisfies the evaluator's constraints and returns them ordered by
// descending probability, ties broken by ascending position tuple.
//
// Candidates are produced lazily and scored in batches so the combination
// space is never materialized at once. The k=2 any-hit case skips the
// per-strategy grid scan entirely via the pair table's union identity.
func (e *Evaluator) Rank(k, ceiling int) ([]Scored, error) {
	if k < 1 {
		return nil, fmt.Errorf("marker count must be positive, got %d", k)
	}
	if k > ceiling {
		return nil, fmt.Errorf("marker count %d exceeds search ceiling %d (empty combination space)", k, ceiling)
	}
	if ceiling > e.grid.MaxPosition() {
		return nil, fmt.Errorf("search ceiling %d exceeds max position %d", ceiling, e.grid.MaxPosition())
	}

	var scored []Scored
	if e.mode == AnyHit && k == 2 {
		scored = e.rankPairs(ceiling)
	} else {
		scored = e.rankScan(k, ceiling)
	}
	e.collector.AddStrategies(len(scored))

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Probability != scored[j].Probability {
			return scored[i].Probability > scored[j].Probability
		}
		return lessPositions(scored[i].Positions, scored[j].Positions)
	})
	return scored, nil
}

// rankPairs scores every admissible pair from precomputed hit and
// co-occurrence counts in O(1) each.
func (e *Evaluator) rankPairs(ceiling int) []Scored {
	table := e.grid.PairTable(ceiling)

	scored := make([]Scored, 0, combin.Binomial(ceiling, 2))
	positions := make([]int, 2)
	for a := 1; a <= ceiling; a++ {
		for b := a + 1; b <= ceiling; b++ {
			positions[0], positions[1] = a, b
			if !e.admits(positions) {
				continue
			}
			scored = append(scored, Scored{
				Positions:   []int{a, b},
				Probability: table.UnionProbability(a, b),
			})
		}
	}
	return scored
}

// rankScan scores candidates by scanning the grid's bitset rows. One producer
// walks the combination generator; workers score batches concurrently.
func (e *Evaluator) rankScan(k, ceiling int) []Scored {
	jobs := make(chan [][]int, e.goroutines)

	go func() {
		defer close(jobs)

		generator := combin.NewCombinationGenerator(ceiling, k)
		buffer := make([]int, k)
		batch := make([][]int, 0, jobBatch)
		for generator.Next() {
			generator.Combination(buffer)

			positions := make([]int, k)
			for i, v := range buffer {
				positions[i] = v + 1 // Combinations are 0-based, track positions 1-based
			}
			if !e.admits(positions) {
				continue
			}

			batch = append(batch, positions)
			if len(batch) == jobBatch {
				jobs <- batch
				batch = make([][]int, 0, jobBatch)
			}
		}
		if len(batch) > 0 {
			jobs <- batch
		}
	}()

	var mu sync.Mutex
	scored := make([]Scored, 0, combin.Binomial(ceiling, k))

	var wg sync.WaitGroup
	for i := 0; i < e.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			local := make([]Scored, 0, jobBatch)
			for batch := range jobs {
				local = local[:0]
				for _, positions := range batch {
					local = append(local, Scored{
						Positions:   positions,
						Probability: e.Score(positions),
					})
				}
				mu.Lock()
				scored = append(scored, local...)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return scored
}

func (e *Evaluator) admits(positions []int) bool {
	for _, constraint := range e.constraints {
		if !constraint(positions) {
			return false
		}
	}
	return true
}

func lessPositions(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
