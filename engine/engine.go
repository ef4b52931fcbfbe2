// Package engine wires the simulation pipeline: sample walks, build the
// occupancy grid, rank marker strategies, and validate the grid's marginals
// against the exact recurrence.
package engine

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"

	"coinwalk/exact"
	"coinwalk/grid"
	"coinwalk/metrics"
	"coinwalk/strategy"
	"coinwalk/walk"
)

// Result is one complete run: the ranked strategies plus the validation and
// bookkeeping needed to judge them.
type Result struct {
	// Config is the normalized configuration the run actually used.
	Config Config
	// Ranking holds every admissible strategy, descending by probability.
	Ranking []strategy.Scored
	// Marginals is the empirical landing probability per position 0..MaxPosition.
	Marginals []float64
	// Exact is the recurrence oracle's vector over the same positions.
	Exact []float64
	// MarginalDeviation is the largest absolute gap between Marginals and
	// Exact; it should shrink like 1/sqrt(TrialCount).
	MarginalDeviation float64
	// Degenerate marks a trial count too small for scores to be meaningful.
	Degenerate bool
	// Seed is the seed actually used, for reproducing the run.
	Seed uint64
	// Metric reports run counters and wall time.
	Metric metrics.RunMetric
}

// Run executes the pipeline for one configuration. It fails fast on an
// invalid configuration and otherwise returns a complete ranked result.
func Run(config Config) (*Result, error) {
	config = config.normalized()
	if err := config.validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		config.Seed = seed
		log.Info().Uint64("seed", seed).Msg("no seed configured, drew one")
	}

	degenerate := config.TrialCount < DegenerateTrials
	if degenerate {
		log.Warn().
			Int("trials", config.TrialCount).
			Int("required", DegenerateTrials).
			Msg("trial count too small for statistically meaningful scores")
	}

	collector := metrics.NewCollector()
	collector.Start(config.Goroutines)

	sampler := walk.NewSampler(config.FaceCount, config.StepBudget,
		walk.WithSeed(seed), walk.WithGoroutines(config.Goroutines))
	trials := sampler.Sample(config.TrialCount)
	collector.AddTrials(len(trials))
	log.Debug().Int("trials", len(trials)).Int("stepBudget", config.StepBudget).Msg("sampled walks")

	g := grid.Build(trials, config.MaxPosition, grid.WithGoroutines(config.Goroutines))
	log.Debug().Int("maxPosition", config.MaxPosition).Msg("built occupancy grid")

	evaluator := strategy.NewEvaluator(g, config.Mode,
		strategy.WithGoroutines(config.Goroutines),
		strategy.WithConstraints(config.Constraints...),
		strategy.WithCollector(collector))
	ranking, err := evaluator.Rank(config.NumMarkers, config.SearchCeiling)
	if err != nil {
		return nil, err
	}

	exactVector, err := exact.LandingProbabilities(config.MaxPosition, config.FaceCount)
	if err != nil {
		return nil, err
	}
	marginals := g.Marginals()
	deviation := floats.Distance(marginals, exactVector, math.Inf(1))

	metric := collector.Complete()
	log.Info().
		Int("strategies", metric.Strategies).
		Dur("duration", metric.Duration).
		Float64("marginalDeviation", deviation).
		Msg("run complete")

	return &Result{
		Config:            config,
		Ranking:           ranking,
		Marginals:         marginals,
		Exact:             exactVector,
		MarginalDeviation: deviation,
		Degenerate:        degenerate,
		Seed:              seed,
		Metric:            metric,
	}, nil
}
