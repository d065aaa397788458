// Package tvm provides the time-value-of-money primitives shared by every
// projection in the workbook.
//
// Cash flows follow the usual spreadsheet sign convention: money paid out is
// negative, money received is positive. FutureValue and Payment are inverses
// of each other at a terminal balance of zero.
package tvm

import (
	"errors"
	"math"
)

// ErrZeroPeriods is returned when a payment is requested over zero periods.
var ErrZeroPeriods = errors.New("tvm: number of periods must be positive")

// FutureValue returns the value after periods of presentValue plus a stream of
// equal payments, all compounded at rate per period.
func FutureValue(rate float64, periods int, payment, presentValue float64) float64 {
	n := float64(periods)
	if rate == 0 {
		return -(presentValue + payment*n)
	}
	growth := math.Pow(1+rate, n)
	return -(presentValue*growth + payment*(growth-1)/rate)
}

// Payment returns the constant payment per period that amortizes
// presentValue over periods at rate per period.
func Payment(rate float64, periods int, presentValue float64) (float64, error) {
	if periods <= 0 {
		return 0, ErrZeroPeriods
	}
	n := float64(periods)
	if rate == 0 {
		return -presentValue / n, nil
	}
	growth := math.Pow(1+rate, n)
	return -(rate * presentValue * growth) / (growth - 1), nil
}

// AnnuityPresentValue returns the lump sum needed today to fund periods
// payments of the given size at rate per period.
func AnnuityPresentValue(rate float64, periods int, payment float64) float64 {
	n := float64(periods)
	if periods <= 0 {
		return 0
	}
	if rate == 0 {
		return payment * n
	}
	return payment * (1 - math.Pow(1+rate, -n)) / rate
}

// Deflate returns the purchasing power of amount after years of inflation at
// annualRate.
func Deflate(amount, annualRate float64, years int) float64 {
	return amount / math.Pow(1+annualRate, float64(years))
}

// Inflate compounds amount forward over years at annualRate. It is
// FutureValue with no payments and the amount supplied as an outflow.
func Inflate(amount, annualRate float64, years int) float64 {
	return FutureValue(annualRate, years, 0, -amount)
}
