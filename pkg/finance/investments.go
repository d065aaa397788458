// Package finance provides projections of savings and investments over time.
package finance

import (
	"math"

	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
	"github.com/iwvelando/finance-workbook/pkg/tvm"
)

// GrowthProjection is the outcome of regular investing at a constant return.
// Balances and Deposits hold the value and the cumulative deposits at the
// start and after each year.
type GrowthProjection struct {
	FinalValue float64   `json:"finalValue"`
	Deposited  float64   `json:"deposited"`
	Gain       float64   `json:"gain"`
	Balances   []float64 `json:"balances"`
	Deposits   []float64 `json:"deposits"`
}

// ProjectGrowth compounds an initial value plus a monthly contribution at
// annualReturnPercent, compounded monthly, for the given number of years.
func ProjectGrowth(initial, monthly, annualReturnPercent float64, years int) GrowthProjection {
	if years < 0 {
		years = 0
	}
	rate := mathutil.PercentToRate(annualReturnPercent) / constants.MonthsPerYear
	months := years * constants.MonthsPerYear

	p := GrowthProjection{
		FinalValue: math.Abs(tvm.FutureValue(rate, months, -monthly, -initial)),
		Deposited:  initial + monthly*float64(months),
		Balances:   make([]float64, years+1),
		Deposits:   make([]float64, years+1),
	}
	p.Gain = p.FinalValue - p.Deposited

	value := initial
	for y := 0; y <= years; y++ {
		if y > 0 {
			for m := 0; m < constants.MonthsPerYear; m++ {
				value = value*(1+rate) + monthly
			}
		}
		p.Balances[y] = value
		p.Deposits[y] = initial + monthly*float64(y*constants.MonthsPerYear)
	}
	return p
}

// InflationSeries returns the real value of amount at the start and after
// each year of inflation at inflationPercent.
func InflationSeries(amount, inflationPercent float64, years int) []float64 {
	if years < 0 {
		years = 0
	}
	series := make([]float64, years+1)
	for y := range series {
		series[y] = tvm.Deflate(amount, mathutil.PercentToRate(inflationPercent), y)
	}
	return series
}
