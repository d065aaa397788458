// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/internal/plan"
	"github.com/iwvelando/finance-workbook/pkg/numeric"
)

// FindAlert finds an alert by code in the alerts slice.
// Returns a pointer to the alert if found, nil otherwise.
func FindAlert(alerts []plan.Alert, code string) *plan.Alert {
	for i := range alerts {
		if alerts[i].Code == code {
			return &alerts[i]
		}
	}
	return nil
}

// SampleHousehold returns a two-person household with the payroll calculator
// enabled for the first person at a gross salary of 50 000 a month.
func SampleHousehold() *household.Household {
	h := household.New()
	h.Persons[0].FirstName = "Jana"
	h.Persons[0].LastName = "Nováková"
	h.Persons[0].BirthYear = numeric.Amount(1986)
	h.Payroll[0].GrossMonthly = numeric.Amount(50000)
	h.Persons[1].FirstName = "Petr"
	h.Persons[1].LastName = "Novák"
	h.Persons[1].PrimaryIncome = numeric.Amount(36000)
	h.Expenses.Housing = numeric.Amount(25000)
	h.Expenses.Other = numeric.Amount(15000)
	h.Goals[0] = household.Goal{Name: "Car", TargetYear: numeric.Amount(2031), Amount: numeric.Amount(600000)}
	return h
}
