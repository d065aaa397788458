package finance

import (
	"fmt"
	"math"
)

// RiskProfile is an investor's risk tolerance on a scale from 1 (conservative)
// to 5 (dynamic).
type RiskProfile int

const (
	RiskConservative RiskProfile = iota + 1
	RiskCautious
	RiskBalanced
	RiskProgressive
	RiskDynamic
)

func (r RiskProfile) String() string {
	switch r {
	case RiskConservative:
		return "conservative"
	case RiskCautious:
		return "cautious"
	case RiskBalanced:
		return "balanced"
	case RiskProgressive:
		return "progressive"
	case RiskDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("risk(%d)", int(r))
	}
}

// PortfolioAllocation is a percentage split across asset classes.
type PortfolioAllocation struct {
	Profile    RiskProfile `json:"profile"`
	Equities   float64     `json:"equities"`
	Bonds      float64     `json:"bonds"`
	RealEstate float64     `json:"realEstate"`
	Cash       float64     `json:"cash"`
}

// Allocation suggests a portfolio split for an investor of the given age and
// risk profile. Out-of-range profiles are clamped to the nearest valid one.
func Allocation(age int, risk RiskProfile) PortfolioAllocation {
	if risk < RiskConservative {
		risk = RiskConservative
	}
	if risk > RiskDynamic {
		risk = RiskDynamic
	}

	bondBase := math.Max(15, float64(100-age)*0.5)
	equityBase := 100 - bondBase
	adjustment := float64(risk-RiskBalanced) * 10

	equities := math.Min(90, math.Max(5, math.Round(equityBase+adjustment)))
	bonds := math.Min(80, math.Max(5, math.Round(100-equities-10)))
	realEstate := math.Max(0, math.Round((equities-bonds)*0.12))
	cash := math.Max(0, 100-equities-bonds-realEstate)

	return PortfolioAllocation{
		Profile:    risk,
		Equities:   equities,
		Bonds:      bonds,
		RealEstate: realEstate,
		Cash:       cash,
	}
}
