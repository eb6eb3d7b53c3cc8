package keysctl

import "math"

// ToPercent maps a raw value in [min, max] onto 0-100, rounding to nearest.
// max must be greater than min.
func ToPercent(min, max, raw int64) int64 {
	ratio := float64(raw-min) / float64(max-min) * 100
	return int64(math.Round(ratio))
}

// ToRaw maps a percentage onto the raw range [min, max], rounding to nearest.
// percent is not clamped.
func ToRaw(min, max, percent int64) int64 {
	ratio := float64(percent) * float64(max-min) / 100
	return min + int64(math.Round(ratio))
}

func clamp(value, lo, hi int64) int64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
