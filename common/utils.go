package common

import "math"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
// Used to layer configured values over built-in defaults.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Finite reports whether every value is neither NaN nor an infinity.
//
// Parameters:
//   - values: values to check
//
// Returns:
//   - bool: true if all values are finite (also true for no values)
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// OrZero returns v when it is finite and 0 otherwise.
// Missing or malformed sensor axes are carried as NaN and collapse to a neutral contribution here.
func OrZero(v float64) float64 {
	if !Finite(v) {
		return 0
	}
	return v
}
