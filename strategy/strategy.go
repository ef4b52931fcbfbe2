// Package strategy enumerates and scores marker placements against an
// occupancy grid. A strategy is a fixed-size set of distinct track positions;
// its score is the empirical probability that a trial satisfies the success
// mode (landing on at least one position, or on all of them).
package strategy

import "fmt"

// Mode selects the success predicate applied to a strategy's positions.
type Mode int

const (
	// AnyHit succeeds when a trial lands on at least one chosen position.
	AnyHit Mode = iota
	// AllHit succeeds when a trial lands on every chosen position.
	AllHit
)

func (m Mode) String() string {
	switch m {
	case AnyHit:
		return "any"
	case AllHit:
		return "all"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps the configuration surface's "any"/"all" values to a Mode.
func ParseMode(value string) (Mode, error) {
	switch value {
	case "any":
		return AnyHit, nil
	case "all":
		return AllHit, nil
	default:
		return 0, fmt.Errorf("unknown success mode %q", value)
	}
}

// Constraint filters candidate strategies. Positions arrive sorted ascending;
// a strategy is kept only if every constraint returns true.
type Constraint func(positions []int) bool

// MinGap admits only strategies where chosen positions pairwise differ by at
// least gap. MinGap(2) excludes consecutive positions.
func MinGap(gap int) Constraint {
	return func(positions []int) bool {
		for i := 1; i < len(positions); i++ {
			if positions[i]-positions[i-1] < gap {
				return false
			}
		}
		return true
	}
}

// Scored pairs a strategy with its empirical success probability. The
// probability is a sample frequency, so it carries sampling error on the
// order of 1/sqrt(trials).
type Scored struct {
	Positions   []int
	Probability float64
}
