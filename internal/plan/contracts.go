package plan

import (
	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/pkg/datetime"
)

// LoanTerm is an existing loan contract with the months left until its end
// date. MonthsLeft is 0 when the end date is unknown or already past.
type LoanTerm struct {
	Kind           string  `json:"kind"`
	Institution    string  `json:"institution"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	Remaining      float64 `json:"remaining"`
	MonthsLeft     int     `json:"monthsLeft"`
}

// ContractOverview totals the household's existing financial products.
type ContractOverview struct {
	SavingsBalance    float64    `json:"savingsBalance"`
	InsurancePremiums float64    `json:"insurancePremiums"`
	LoanPayments      float64    `json:"loanPayments"`
	Loans             []LoanTerm `json:"loans"`
}

// Contracts summarizes existing contracts as of today, a date in
// datetime.DateLayout.
func Contracts(c household.Contracts, today string) ContractOverview {
	overview := ContractOverview{
		SavingsBalance:    c.SavingsBalance(),
		InsurancePremiums: c.InsurancePremiums(),
		LoanPayments:      c.LoanPayments(),
		Loans:             make([]LoanTerm, 0, len(c.Loans)),
	}
	for _, l := range c.Loans {
		overview.Loans = append(overview.Loans, LoanTerm{
			Kind:           l.Kind,
			Institution:    l.Institution,
			MonthlyPayment: l.MonthlyPayment.Float(),
			Remaining:      l.Remaining.Float(),
			MonthsLeft:     datetime.MonthsBetween(today, l.End),
		})
	}
	return overview
}
