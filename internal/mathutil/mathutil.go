// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"cmp"
	"math"
)

// Clamp restricts a value to be within a specified range.
// Returns low if val < low, high if val > high, otherwise returns val.
func Clamp[T cmp.Ordered](val, low, high T) T {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}

// Lerp returns the value at factor t on the line from a to b.
// t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Ratio returns where val sits between low and high as a factor clamped to
// [0, 1]. A degenerate span yields 0.
func Ratio(val, low, high float64) float64 {
	span := high - low
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0
	}
	return Clamp((val-low)/span, 0, 1)
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
