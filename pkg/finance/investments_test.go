package finance

import (
	"math"
	"testing"
)

func TestProjectGrowth(t *testing.T) {
	p := ProjectGrowth(100000, 3000, 7, 20)

	if math.Abs(p.FinalValue-1966653.86) > 0.05 {
		t.Errorf("FinalValue = %.2f, expected 1966653.86", p.FinalValue)
	}
	if p.Deposited != 820000 {
		t.Errorf("Deposited = %.2f, expected 820000", p.Deposited)
	}
	if math.Abs(p.Gain-(p.FinalValue-p.Deposited)) > 1e-9 {
		t.Errorf("Gain = %.2f, expected FinalValue-Deposited", p.Gain)
	}
	if len(p.Balances) != 21 || len(p.Deposits) != 21 {
		t.Fatalf("expected 21 points, got %d balances and %d deposits", len(p.Balances), len(p.Deposits))
	}
	if p.Balances[0] != 100000 {
		t.Errorf("first balance = %.2f, expected initial value", p.Balances[0])
	}
	if math.Abs(p.Balances[20]-p.FinalValue) > 0.01 {
		t.Errorf("last balance %.2f does not match closed form %.2f", p.Balances[20], p.FinalValue)
	}
	if p.Deposits[1] != 136000 {
		t.Errorf("deposits after one year = %.2f, expected 136000", p.Deposits[1])
	}
}

func TestProjectGrowthZeroReturn(t *testing.T) {
	p := ProjectGrowth(1000, 100, 0, 2)
	if p.FinalValue != 3400 {
		t.Errorf("FinalValue = %.2f, expected 3400", p.FinalValue)
	}
	if p.Gain != 0 {
		t.Errorf("Gain = %.2f, expected 0", p.Gain)
	}
}

func TestProjectGrowthNegativeYears(t *testing.T) {
	p := ProjectGrowth(1000, 100, 5, -3)
	if len(p.Balances) != 1 || p.FinalValue != 1000 {
		t.Errorf("negative horizon should collapse to the initial value, got %+v", p)
	}
}

func TestInflationSeries(t *testing.T) {
	series := InflationSeries(1000000, 3, 20)
	if len(series) != 21 {
		t.Fatalf("expected 21 points, got %d", len(series))
	}
	if series[0] != 1000000 {
		t.Errorf("first point = %.2f, expected 1000000", series[0])
	}
	if math.Abs(series[20]-553675.75) > 0.01 {
		t.Errorf("real value after 20 years = %.2f, expected 553675.75", series[20])
	}
}

func TestAllocation(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		risk     RiskProfile
		expected PortfolioAllocation
	}{
		{"Balanced at 40", 40, RiskBalanced, PortfolioAllocation{RiskBalanced, 70, 20, 6, 4}},
		{"Dynamic at 25", 25, RiskDynamic, PortfolioAllocation{RiskDynamic, 83, 7, 9, 1}},
		{"Conservative at 70", 70, RiskConservative, PortfolioAllocation{RiskConservative, 65, 25, 5, 5}},
		{"Profile clamped from above", 40, RiskProfile(9), PortfolioAllocation{RiskDynamic, 90, 5, 10, 0}},
		{"Profile clamped from below", 40, RiskProfile(0), PortfolioAllocation{RiskConservative, 50, 40, 1, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allocation(tt.age, tt.risk); got != tt.expected {
				t.Errorf("Allocation(%d, %v) = %+v, expected %+v", tt.age, tt.risk, got, tt.expected)
			}
		})
	}
}

func TestRiskProfileString(t *testing.T) {
	if RiskBalanced.String() != "balanced" {
		t.Errorf("RiskBalanced.String() = %q", RiskBalanced.String())
	}
	if RiskProfile(7).String() != "risk(7)" {
		t.Errorf("RiskProfile(7).String() = %q", RiskProfile(7).String())
	}
}
