// Package plan aggregates payroll results and the manually entered household
// records into the metrics, alerts and recommendations of a financial plan.
package plan

import (
	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/internal/payroll"
	"github.com/iwvelando/finance-workbook/internal/ratetable"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
)

// ResolveIncome returns the primary income to present for a person. A
// computed salary from an enabled payroll calculator takes precedence over
// the manually entered figure, which is left untouched either way.
func ResolveIncome(manual float64, computed *payroll.Result, enabled bool) float64 {
	if enabled && computed != nil {
		return computed.Net
	}
	return manual
}

// PersonIncome is one person's monthly income by category.
type PersonIncome struct {
	Name    string          `json:"name"`
	Primary float64         `json:"primary"`
	Side    float64         `json:"side"`
	Passive float64         `json:"passive"`
	Total   float64         `json:"total"`
	Salary  *payroll.Result `json:"salary,omitempty"`
	// Locked is set when Primary comes from the payroll calculator.
	Locked bool `json:"locked"`
}

// Summary is the household aggregate.
type Summary struct {
	Persons [2]PersonIncome `json:"persons"`

	Income       float64        `json:"income"`
	Expenses     float64        `json:"expenses"`
	Cashflow     float64        `json:"cashflow"`
	SavingsRate  mathutil.Ratio `json:"savingsRate"`
	ExpenseRatio mathutil.Ratio `json:"expenseRatio"`

	Liabilities       float64        `json:"liabilities"`
	LiabilityPayments float64        `json:"liabilityPayments"`
	Assets            float64        `json:"assets"`
	NetWorth          float64        `json:"netWorth"`
	DebtToIncome      mathutil.Ratio `json:"debtToIncome"`

	GoalsMonthly float64 `json:"goalsMonthly"`
}

// Salaries runs the payroll calculator of both persons.
func Salaries(h *household.Household, table ratetable.Table) [2]*payroll.Result {
	var out [2]*payroll.Result
	for i, cfg := range h.Payroll {
		out[i] = payroll.ComputeForInput(table, cfg.Input())
	}
	return out
}

// Summarize computes the household aggregate for currentYear.
func Summarize(h *household.Household, table ratetable.Table, currentYear int) Summary {
	return summarize(h, Salaries(h, table), currentYear, constants.DefaultInflationRate)
}

func summarize(h *household.Household, salaries [2]*payroll.Result, currentYear int, inflation float64) Summary {
	var s Summary
	for i, p := range h.Persons {
		enabled := h.Payroll[i].Enabled
		income := PersonIncome{
			Name:    p.FullName(),
			Primary: ResolveIncome(p.PrimaryIncome.Float(), salaries[i], enabled),
			Side:    p.SideIncome.Float(),
			Passive: p.PassiveIncome.Float(),
			Salary:  salaries[i],
			Locked:  enabled && salaries[i] != nil,
		}
		income.Total = income.Primary + income.Side + income.Passive
		s.Persons[i] = income
		s.Income += income.Total
	}

	s.Expenses = h.Expenses.Total()
	s.Cashflow = s.Income - s.Expenses
	s.SavingsRate = mathutil.Divide(s.Cashflow, s.Income)
	s.ExpenseRatio = mathutil.Divide(s.Expenses, s.Income)

	s.Liabilities = h.Liabilities.TotalRemaining()
	s.LiabilityPayments = h.Liabilities.TotalPayments()
	s.Assets = h.Assets.TotalValue()
	s.NetWorth = s.Assets - s.Liabilities
	s.DebtToIncome = mathutil.Divide(s.Liabilities, s.Income*constants.MonthsPerYear)

	_, s.GoalsMonthly = Goals(h.Goals, currentYear, inflation)
	return s
}
