// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-workbook/pkg/constants"
)

// Round rounds a value to the nearest whole currency unit, half away from
// zero.
func Round(val float64) float64 {
	return math.Round(val)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) < constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Finite reports whether val is neither NaN nor an infinity.
func Finite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// Clamp limits val to the closed interval [min, max].
func Clamp(val, min, max float64) float64 {
	return math.Max(min, math.Min(val, max))
}

// Band returns the part of val that falls between low and high, or 0 when val
// is below low.
func Band(val, low, high float64) float64 {
	return math.Max(0, math.Min(val, high)-low)
}

// PercentToRate converts a percentage such as 4.5 into a rate such as 0.045.
func PercentToRate(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}
