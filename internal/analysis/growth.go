// Package analysis provides post-run diagnostics on epidemic trajectories.
package analysis

import "math"

// GrowthRate fits log(y) = a + r*t by least squares over the samples where
// y is positive and returns r, the exponential growth rate per day. Fewer
// than two positive samples yield 0.
func GrowthRate(times, values []float64) float64 {
	n := 0
	var sumT, sumY, sumTT, sumTY float64
	for i := range values {
		if i >= len(times) || values[i] <= 0 {
			continue
		}
		t := times[i]
		y := math.Log(values[i])
		sumT += t
		sumY += y
		sumTT += t * t
		sumTY += t * y
		n++
	}
	if n < 2 {
		return 0
	}

	denom := float64(n)*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	return (float64(n)*sumTY - sumT*sumY) / denom
}

// DoublingTime converts a growth rate to the time it takes the curve to
// double. Non-growing curves have no doubling time.
func DoublingTime(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return math.Ln2 / rate
}

// Peak returns the time and value of the largest sample.
func Peak(times, values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	maxIdx := 0
	for i := range values {
		if values[i] > values[maxIdx] {
			maxIdx = i
		}
	}
	t := 0.0
	if maxIdx < len(times) {
		t = times[maxIdx]
	}
	return t, values[maxIdx]
}
