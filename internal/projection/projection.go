// Package projection runs the advisor's what-if scenarios: mortgage and loan
// amortization, investment growth, inflation decay, retirement saving and
// portfolio allocation. Scenarios are transient and independent of the saved
// household record.
package projection

import (
	"fmt"

	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/finance"
	"github.com/iwvelando/finance-workbook/pkg/loans"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
	"go.uber.org/zap"
)

// MortgageScenario is a fixed-rate mortgage with a rate fixation period.
type MortgageScenario struct {
	Principal     float64 `json:"principal"`
	RatePercent   float64 `json:"ratePercent"`
	Years         int     `json:"years"`
	FixationYears int     `json:"fixationYears"`
}

// DefaultMortgage returns the mortgage panel defaults.
func DefaultMortgage() MortgageScenario {
	return MortgageScenario{Principal: 4000000, RatePercent: 4.5, Years: 25, FixationYears: 5}
}

// MortgageProjection is the outcome of a mortgage scenario.
type MortgageProjection struct {
	MonthlyPayment       float64   `json:"monthlyPayment"`
	TotalPaid            float64   `json:"totalPaid"`
	Overpayment          float64   `json:"overpayment"`
	BalanceAfterFixation float64   `json:"balanceAfterFixation"`
	Balances             []float64 `json:"balances"`
}

// Mortgage projects a mortgage scenario.
func Mortgage(s MortgageScenario) (MortgageProjection, error) {
	s.Years = clampYears(s.Years)
	s.FixationYears = clampYears(s.FixationYears)
	months := s.Years * constants.MonthsPerYear
	payment, err := loans.CalculateMonthlyPayment(s.Principal, s.RatePercent, months)
	if err != nil {
		return MortgageProjection{}, fmt.Errorf("mortgage: %w", err)
	}
	afterFixation, err := loans.BalanceAfter(s.Principal, s.RatePercent, months, s.FixationYears*constants.MonthsPerYear)
	if err != nil {
		return MortgageProjection{}, fmt.Errorf("mortgage: %w", err)
	}
	balances, err := loans.YearlyBalances(s.Principal, s.RatePercent, s.Years)
	if err != nil {
		return MortgageProjection{}, fmt.Errorf("mortgage: %w", err)
	}

	total := payment * float64(months)
	return MortgageProjection{
		MonthlyPayment:       payment,
		TotalPaid:            total,
		Overpayment:          total - s.Principal,
		BalanceAfterFixation: afterFixation,
		Balances:             balances,
	}, nil
}

// LoanScenario is a fully amortizing consumer or mortgage loan.
type LoanScenario struct {
	Principal   float64 `json:"principal"`
	RatePercent float64 `json:"ratePercent"`
	Years       int     `json:"years"`
}

// DefaultLoan returns the loan calculator defaults.
func DefaultLoan() LoanScenario {
	return LoanScenario{Principal: 3000000, RatePercent: 5.5, Years: 25}
}

// LoanProjection is the outcome of a loan scenario.
type LoanProjection struct {
	MonthlyPayment float64             `json:"monthlyPayment"`
	TotalPaid      float64             `json:"totalPaid"`
	TotalInterest  float64             `json:"totalInterest"`
	ByYear         []loans.YearSummary `json:"byYear"`
}

// Loan projects a loan scenario with the yearly split between principal and
// interest.
func Loan(logger *zap.Logger, s LoanScenario) (LoanProjection, error) {
	s.Years = clampYears(s.Years)
	schedule, err := loans.NewAmortizationScheduleGenerator(logger).GenerateSchedule(&loans.LoanConfig{
		Name:         "loan calculator",
		Principal:    s.Principal,
		InterestRate: s.RatePercent,
		Term:         s.Years * constants.MonthsPerYear,
	})
	if err != nil {
		return LoanProjection{}, err
	}

	p := LoanProjection{ByYear: loans.SummarizeByYear(schedule)}
	if len(schedule) > 0 {
		p.MonthlyPayment = schedule[0].Payment
	}
	for _, payment := range schedule {
		p.TotalPaid += payment.Payment
		p.TotalInterest += payment.Interest
	}
	return p, nil
}

// InvestmentScenario is regular investing at a constant return.
type InvestmentScenario struct {
	Initial       float64 `json:"initial"`
	Monthly       float64 `json:"monthly"`
	ReturnPercent float64 `json:"returnPercent"`
	Years         int     `json:"years"`
}

// DefaultInvestment returns the investment panel defaults.
func DefaultInvestment() InvestmentScenario {
	return InvestmentScenario{Initial: 100000, Monthly: 3000, ReturnPercent: 7, Years: 20}
}

// DefaultInvestmentCalculator returns the investment calculator defaults,
// which assume a larger monthly contribution than the panel.
func DefaultInvestmentCalculator() InvestmentScenario {
	s := DefaultInvestment()
	s.Monthly = 5000
	return s
}

// InvestmentProjection is the outcome of an investment scenario.
type InvestmentProjection struct {
	finance.GrowthProjection
	// Appreciation is the total return relative to the deposits.
	Appreciation mathutil.Ratio `json:"appreciation"`
}

// Investment projects an investment scenario.
func Investment(s InvestmentScenario) InvestmentProjection {
	s.Years = clampYears(s.Years)
	growth := finance.ProjectGrowth(s.Initial, s.Monthly, s.ReturnPercent, s.Years)
	return InvestmentProjection{
		GrowthProjection: growth,
		Appreciation:     mathutil.Divide(growth.Gain, growth.Deposited),
	}
}

// InflationScenario is an amount of money left to lose value.
type InflationScenario struct {
	Amount      float64 `json:"amount"`
	RatePercent float64 `json:"ratePercent"`
	Years       int     `json:"years"`
}

// DefaultInflation returns the inflation calculator defaults.
func DefaultInflation() InflationScenario {
	return InflationScenario{Amount: 1000000, RatePercent: 3, Years: 20}
}

// InflationProjection is the outcome of an inflation scenario.
type InflationProjection struct {
	RealValue float64   `json:"realValue"`
	Loss      float64   `json:"loss"`
	LossShare float64   `json:"lossShare"`
	Series    []float64 `json:"series"`
}

// Inflation projects the purchasing power of an amount.
func Inflation(s InflationScenario) InflationProjection {
	s.Years = clampYears(s.Years)
	series := finance.InflationSeries(s.Amount, s.RatePercent, s.Years)
	realValue := series[len(series)-1]
	p := InflationProjection{
		RealValue: realValue,
		Loss:      s.Amount - realValue,
		Series:    series,
	}
	if s.Amount != 0 {
		p.LossShare = p.Loss / s.Amount
	}
	return p
}

// AllocationScenario is an investor profile.
type AllocationScenario struct {
	Age  int                 `json:"age"`
	Risk finance.RiskProfile `json:"risk"`
}

// DefaultAllocation returns the allocation calculator defaults.
func DefaultAllocation() AllocationScenario {
	return AllocationScenario{Age: 40, Risk: finance.RiskBalanced}
}

// Allocation suggests a portfolio split for an investor profile.
func Allocation(s AllocationScenario) finance.PortfolioAllocation {
	age := int(mathutil.Clamp(float64(s.Age), 0, 120))
	return finance.Allocation(age, s.Risk)
}

// clampYears bounds a scenario horizon to [0, MaxProjectionYears].
func clampYears(years int) int {
	switch {
	case years < 0:
		return 0
	case years > constants.MaxProjectionYears:
		return constants.MaxProjectionYears
	}
	return years
}
