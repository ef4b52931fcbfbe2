// Package exact computes closed-form landing probabilities for a forward
// random walk with uniform die steps. It serves as the validation oracle for
// the Monte Carlo pipeline: the empirical per-position marginals must agree
// with these values within sampling error.
package exact

import "fmt"

// LandingProbabilities returns the probability, for every position
// 0..maxPosition, that a walk starting at 0 with uniform steps in
// {1..faceCount} ever lands exactly on that position.
//
// The vector follows the recurrence p[0] = 1 and
// p[i] = (p[i-faceCount] + ... + p[i-1]) / faceCount, with indices below zero
// contributing 0. Values converge to 2/(faceCount+1) as i grows.
func LandingProbabilities(maxPosition, faceCount int) ([]float64, error) {
	if maxPosition <= 0 {
		return nil, fmt.Errorf("maxPosition must be positive, got %d", maxPosition)
	}
	if faceCount <= 0 {
		return nil, fmt.Errorf("faceCount must be positive, got %d", faceCount)
	}

	p := make([]float64, maxPosition+1)
	p[0] = 1

	// window holds the sum of the up-to-faceCount entries preceding i
	window := 1.0
	for i := 1; i <= maxPosition; i++ {
		p[i] = window / float64(faceCount)
		window += p[i]
		if i >= faceCount {
			window -= p[i-faceCount]
		}
	}
	return p, nil
}
