package common

import "math"

// Clamp bounds v to the inclusive range [lo, hi].
// NaN collapses to lo so a malformed value can never escape the range.
//
// Parameters:
//   - v: value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: v limited to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Distance returns the Euclidean distance between two points.
//
// Parameters:
//   - a: first point
//   - b: second point
//
// Returns:
//   - float64: length of the segment between a and b
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// WrapDegrees maps an angle in degrees onto the half-open interval (-180, 180].
// Compass-style readings jump from 359 to 0, so deltas between two samples are wrapped before use.
//
// Parameters:
//   - deg: angle in degrees
//
// Returns:
//   - float64: equivalent angle in (-180, 180]
func WrapDegrees(deg float64) float64 {
	w := math.Mod(deg, 360)
	if w <= -180 {
		w += 360
	} else if w > 180 {
		w -= 360
	}
	return w
}

// NormalizeDegrees maps an angle in degrees onto [0, 360).
//
// Parameters:
//   - deg: angle in degrees
//
// Returns:
//   - float64: equivalent angle in [0, 360)
func NormalizeDegrees(deg float64) float64 {
	w := math.Mod(deg, 360)
	if w < 0 {
		w += 360
	}
	return w
}
