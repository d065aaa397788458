// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/finance-workbook/pkg/constants"
)

const (
	// DateLayout is the format of dates stored in household documents.
	DateLayout = constants.DateLayout
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// YearsUntil returns the number of whole calendar years from currentYear to
// targetYear, or 0 if the target year is not in the future.
func YearsUntil(targetYear, currentYear int) int {
	if targetYear <= currentYear {
		return 0
	}
	return targetYear - currentYear
}

// Age returns the age reached during currentYear by someone born in
// birthYear, or fallback when the birth year is unknown or in the future.
func Age(birthYear, currentYear, fallback int) int {
	if birthYear <= 0 || birthYear > currentYear {
		return fallback
	}
	return currentYear - birthYear
}

// MonthsBetween returns the number of whole months from start to end, or 0
// when either date is unparsable or end is not after start.
func MonthsBetween(start, end string) int {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil || !e.After(s) {
		return 0
	}
	months := (e.Year()-s.Year())*12 + int(e.Month()-s.Month())
	if e.Day() < s.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
