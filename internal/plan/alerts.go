package plan

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/format"
)

// Severity of an alert.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityAdvice  Severity = "advice"
)

// Alert codes.
const (
	AlertNegativeCashflow = "negative-cashflow"
	AlertLowSavings       = "low-savings"
	AlertHighDebt         = "high-debt"
	AlertIllnessLoss      = "illness-loss"
)

// Alert is a risk flagged on the dashboard.
type Alert struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Alerts flags the risks visible in the household aggregate. The illness
// alert needs at least one payroll result.
func Alerts(s Summary, illness IllnessEstimate, hasSalary bool) []Alert {
	var alerts []Alert
	if s.Cashflow < 0 && s.Income > 0 {
		alerts = append(alerts, Alert{
			Code:     AlertNegativeCashflow,
			Severity: SeverityWarning,
			Message:  "Negative cashflow: expenses exceed income",
		})
	}
	if s.SavingsRate.Below(constants.LowSavingsRate) && s.Cashflow >= 0 {
		alerts = append(alerts, Alert{
			Code:     AlertLowSavings,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Low savings rate: below %.0f %% of income", constants.LowSavingsRate*100),
		})
	}
	if s.DebtToIncome.Above(constants.MaxDebtToIncome) {
		alerts = append(alerts, Alert{
			Code:     AlertHighDebt,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("High debt: DTI %s exceeds the %.0f× limit",
				format.Multiple(s.DebtToIncome), constants.MaxDebtToIncome),
		})
	}
	if hasSalary && illness.MonthlyLoss > s.Expenses*constants.IllnessLossExpenseShare {
		alerts = append(alerts, Alert{
			Code:     AlertIllnessLoss,
			Severity: SeverityAdvice,
			Message: fmt.Sprintf("Long-term illness could cut income by %s per month; consider income protection",
				format.Currency(illness.MonthlyLoss)),
		})
	}
	return alerts
}

// Recommendation is one item of the plan's closing section.
type Recommendation struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Recommendations lists the closing advice of the plan document.
func Recommendations(s Summary) []Recommendation {
	var recs []Recommendation
	if s.Cashflow < 0 && s.Income > 0 {
		recs = append(recs, Recommendation{
			Title: "Negative cashflow",
			Text:  "Household expenses exceed income. Restoring a positive cashflow is the first priority.",
		})
	}
	if s.SavingsRate.Below(constants.LowSavingsRate) && s.Cashflow >= 0 {
		recs = append(recs, Recommendation{
			Title: "Low savings rate",
			Text:  "Aim to save at least 20 % of income. Goals require " + format.Currency(s.GoalsMonthly) + " per month.",
		})
	}
	if s.DebtToIncome.Above(constants.MaxDebtToIncome) {
		recs = append(recs, Recommendation{
			Title: "High debt",
			Text: fmt.Sprintf("DTI %s exceeds the recommended %.0f× limit. Consider refinancing.",
				format.Multiple(s.DebtToIncome), constants.MaxDebtToIncome),
		})
	}
	recs = append(recs,
		Recommendation{
			Title: "Insurance cover",
			Text:  "Set cover to match the family's income and liabilities.",
		},
		Recommendation{
			Title: "Investment strategy",
			Text: "Recommended contribution: " +
				format.Currency(math.Max(0, s.Cashflow*constants.InvestmentShareOfCashflow)) +
				" per month over a horizon of at least 10 years.",
		},
	)
	return recs
}
