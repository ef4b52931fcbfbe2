package walk

import "math"

// DefaultTail is the default ceiling on the probability that a walk's total
// after the full step budget still falls short of the track end.
const DefaultTail = 1e-9

// BudgetFor returns the smallest step budget for which the probability that
// the walk's cumulative sum stays below maxPosition is under tail, by the
// Hoeffding bound P(S_n <= n*mean - slack) <= exp(-2*slack^2 / (n*span^2)).
//
// The result never exceeds maxPosition: the minimum step is 1, so maxPosition
// rolls reach the track end with certainty.
func BudgetFor(maxPosition, faceCount int, tail float64) int {
	if maxPosition <= 0 || faceCount <= 0 {
		panic("Max position and face count must be positive")
	}
	if tail <= 0 {
		tail = DefaultTail
	}

	mean := float64(faceCount+1) / 2
	span := float64(faceCount - 1)

	for n := int(math.Ceil(float64(maxPosition) / mean)); ; n++ {
		if n >= maxPosition {
			return maxPosition
		}
		slack := float64(n)*mean - float64(maxPosition)
		if slack <= 0 {
			continue
		}
		if math.Exp(-2*slack*slack/(float64(n)*span*span)) < tail {
			return n
		}
	}
}
