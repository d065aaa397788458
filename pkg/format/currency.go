// Package format renders workbook figures the way the plan document shows
// them: whole Czech crowns with space-grouped thousands, and a dash for
// anything zero, undefined or not finite.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-workbook/pkg/mathutil"
)

// Dash is the placeholder shown for missing or undefined values.
const Dash = "—"

// CurrencySuffix is appended to every formatted amount.
const CurrencySuffix = " Kč"

// Currency returns a rounded amount with thousands separators and currency
// suffix (e.g. "-1 234 Kč"). Zero and non-finite values are shown as a dash.
func Currency(amount float64) string {
	if !mathutil.Finite(amount) || amount == 0 {
		return Dash
	}
	return NumericCurrency(amount) + CurrencySuffix
}

// NumericCurrency returns the rounded amount with separators but without a
// currency suffix (e.g. "-1 234").
func NumericCurrency(amount float64) string {
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	return sign + groupThousands(fmt.Sprintf("%.0f", math.Abs(rounded)))
}

// Millions abbreviates amounts of a million or more (e.g. "4.2 mil. Kč") and
// falls back to Currency below that.
func Millions(amount float64) string {
	if !mathutil.Finite(amount) || amount == 0 {
		return Dash
	}
	if math.Abs(amount) >= 1e6 {
		return fmt.Sprintf("%.1f mil.%s", amount/1e6, CurrencySuffix)
	}
	return Currency(amount)
}

// Percent renders a fraction as a percentage with one decimal place.
func Percent(value float64) string {
	if !mathutil.Finite(value) {
		return Dash
	}
	return fmt.Sprintf("%.1f %%", value*100)
}

// Ratio renders a possibly undefined ratio as a percentage.
func Ratio(r mathutil.Ratio) string {
	if !r.Defined {
		return Dash
	}
	return Percent(r.Value)
}

// Multiple renders a possibly undefined ratio as a multiple (e.g. "2.50×").
func Multiple(r mathutil.Ratio) string {
	if !r.Defined {
		return Dash
	}
	return fmt.Sprintf("%.2f×", r.Value)
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(' ')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
