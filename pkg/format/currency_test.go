package format

import (
	"math"
	"testing"

	"github.com/iwvelando/finance-workbook/pkg/mathutil"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero is a dash", 0, Dash},
		{"Small amount", 950, "950 Kč"},
		{"Thousands", 39570, "39 570 Kč"},
		{"Millions", 1218994.42, "1 218 994 Kč"},
		{"Negative", -1234.5, "-1 235 Kč"},
		{"NaN", math.NaN(), Dash},
		{"Infinity", math.Inf(1), Dash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestMillions(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{4000000, "4.0 mil. Kč"},
		{1218994.42, "1.2 mil. Kč"},
		{-2500000, "-2.5 mil. Kč"},
		{999999, "999 999 Kč"},
		{0, Dash},
	}

	for _, tt := range tests {
		if got := Millions(tt.amount); got != tt.expected {
			t.Errorf("Millions(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestPercentAndRatio(t *testing.T) {
	if got := Percent(0.0986); got != "9.9 %" {
		t.Errorf("Percent(0.0986) = %q", got)
	}
	if got := Ratio(mathutil.Undefined); got != Dash {
		t.Errorf("Ratio(Undefined) = %q, expected dash", got)
	}
	if got := Ratio(mathutil.Divide(1, 8)); got != "12.5 %" {
		t.Errorf("Ratio(1/8) = %q", got)
	}
	if got := Multiple(mathutil.Divide(5, 2)); got != "2.50×" {
		t.Errorf("Multiple(5/2) = %q", got)
	}
	if got := Multiple(mathutil.Undefined); got != Dash {
		t.Errorf("Multiple(Undefined) = %q, expected dash", got)
	}
}
