// Package numeric coerces loosely typed form input into numbers.
//
// Household documents are edited by hand and through forms, so a numeric
// field may arrive as a JSON number, as a string such as "12 500" or "4,5",
// as an empty string, or as garbage. Anything that cannot be read as a number
// becomes zero; parsing never fails.
package numeric

import (
	"bytes"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Amount is a numeric document field with lenient decoding.
type Amount float64

// Float returns the amount as a float64.
func (a Amount) Float() float64 {
	return float64(a)
}

// Int returns the amount truncated towards zero, never negative.
func (a Amount) Int() int {
	if a <= 0 {
		return 0
	}
	return int(a)
}

// UnmarshalJSON accepts numbers, numeric strings, null and booleans.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(Parse(s))
		return nil
	}
	*a = Amount(Parse(string(trimmed)))
	return nil
}

// MarshalJSON always writes a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(a), 'f', -1, 64)), nil
}

// Parse reads a number written the way advisors type it: optional spaces or
// non-breaking spaces as thousands separators, comma or dot as the decimal
// mark, and an optional trailing currency or percent sign. Unreadable input
// and values outside the float64 range yield 0.
func Parse(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t', '_':
			return -1
		case ',':
			return '.'
		}
		return r
	}, s)
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.TrimSuffix(strings.TrimSuffix(cleaned, "Kč"), "CZK")
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	if !mathutil.Finite(f) {
		return 0
	}
	return f
}
