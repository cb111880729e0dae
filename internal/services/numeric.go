package services

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round2 rounds to two decimal places, half away from zero
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// safeDiv returns 0 instead of Inf/NaN when the denominator is zero
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
