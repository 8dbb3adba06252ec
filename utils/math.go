// Package utils contains small helpers shared across the controller.
package utils

import "math"

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClampPower limits a power percentage to [-1, 1].
func ClampPower(pct float64) float64 {
	return Clamp(pct, -1, 1)
}

// WithinThreshold reports whether |target - current| <= threshold.
func WithinThreshold(target, current, threshold float64) bool {
	return math.Abs(target-current) <= threshold
}
