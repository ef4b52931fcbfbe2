package engine

import (
	"errors"
	"fmt"
	"runtime"

	"coinwalk/strategy"
	"coinwalk/walk"
)

// ErrInvalidConfig wraps every configuration rejection so callers can test
// with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// DegenerateTrials is the trial count below which strategy scores are
// statistically meaningless: at fewer trials the worst-case standard error
// of a score (p = 0.5) exceeds 0.01. Runs still complete below it, but the
// result is annotated and a warning is logged.
const DegenerateTrials = 2500

// Config is the engine's configuration surface. Zero values take documented
// defaults; everything else is validated before any sampling begins.
type Config struct {
	// MaxPosition is the last valid landing position on the track.
	MaxPosition int
	// FaceCount is the number of die sides. Defaults to 6.
	FaceCount int
	// NumMarkers is the strategy size k.
	NumMarkers int
	// TrialCount is the number of independent walks to simulate.
	TrialCount int
	// StepBudget is the number of rolls per trial. Defaults to the smallest
	// budget whose tail bound on stopping short of MaxPosition is below
	// walk.DefaultTail.
	StepBudget int
	// SearchCeiling caps candidate marker positions. Defaults to MaxPosition.
	SearchCeiling int
	// Mode is the success predicate (any-hit or all-hit).
	Mode strategy.Mode
	// Constraints filter candidate strategies, e.g. strategy.MinGap(2).
	Constraints []strategy.Constraint
	// Seed fixes the RNG streams. 0 draws a fresh seed; the one used is
	// reported on the result so a run can be reproduced.
	Seed uint64
	// Goroutines bounds parallelism in every stage. Defaults to GOMAXPROCS.
	Goroutines int
}

// normalized returns a copy with defaults applied.
func (c Config) normalized() Config {
	if c.FaceCount == 0 {
		c.FaceCount = 6
	}
	if c.Goroutines <= 0 {
		c.Goroutines = runtime.GOMAXPROCS(0)
	}
	if c.SearchCeiling == 0 {
		c.SearchCeiling = c.MaxPosition
	}
	if c.StepBudget == 0 && c.MaxPosition > 0 && c.FaceCount > 0 {
		c.StepBudget = walk.BudgetFor(c.MaxPosition, c.FaceCount, walk.DefaultTail)
	}
	return c
}

// validate fails fast, before any sampling, on a configuration that cannot
// produce a complete ranked result.
func (c Config) validate() error {
	if c.MaxPosition <= 0 {
		return fmt.Errorf("%w: max position must be positive, got %d", ErrInvalidConfig, c.MaxPosition)
	}
	if c.FaceCount <= 0 {
		return fmt.Errorf("%w: face count must be positive, got %d", ErrInvalidConfig, c.FaceCount)
	}
	if c.NumMarkers <= 0 {
		return fmt.Errorf("%w: marker count must be positive, got %d", ErrInvalidConfig, c.NumMarkers)
	}
	if c.TrialCount <= 0 {
		return fmt.Errorf("%w: trial count must be positive, got %d", ErrInvalidConfig, c.TrialCount)
	}
	if c.StepBudget <= 0 {
		return fmt.Errorf("%w: step budget must be positive, got %d", ErrInvalidConfig, c.StepBudget)
	}
	if c.SearchCeiling <= 0 {
		return fmt.Errorf("%w: search ceiling must be positive, got %d", ErrInvalidConfig, c.SearchCeiling)
	}
	if c.NumMarkers > c.SearchCeiling {
		return fmt.Errorf("%w: marker count %d exceeds search ceiling %d", ErrInvalidConfig, c.NumMarkers, c.SearchCeiling)
	}
	if c.SearchCeiling > c.MaxPosition {
		return fmt.Errorf("%w: search ceiling %d exceeds max position %d", ErrInvalidConfig, c.SearchCeiling, c.MaxPosition)
	}
	return nil
}
