// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"
)

// ValidateRate checks that a rate is a finite fraction in [0, 1].
func ValidateRate(name string, rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", name, rate)
	}
	return nil
}

// ValidateNonNegative checks that an amount is finite and not negative.
func ValidateNonNegative(name string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%s must be a non-negative amount, got %v", name, amount)
	}
	return nil
}

// ValidateAscending checks that boundaries are strictly increasing and
// positive.
func ValidateAscending(name string, boundaries []float64) error {
	previous := 0.0
	for i, b := range boundaries {
		if b <= previous {
			return fmt.Errorf("%s boundary %d (%v) must be greater than %v", name, i+1, b, previous)
		}
		previous = b
	}
	return nil
}

// ValidateYears checks that a year count lies within [min, max].
func ValidateYears(name string, years, min, max int) error {
	if years < min || years > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, years)
	}
	return nil
}
