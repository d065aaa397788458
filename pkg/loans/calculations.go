// Package loans provides common loan processing utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
	"github.com/iwvelando/finance-workbook/pkg/tvm"
	"go.uber.org/zap"
)

// Payment holds the values for a given monthly payment.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// YearSummary aggregates the payments made during one year of the loan.
type YearSummary struct {
	Year               int     `json:"year"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// LoanConfig represents loan configuration parameters
type LoanConfig struct {
	Name         string
	Principal    float64
	InterestRate float64 // annual, percent
	Term         int     // months
}

// MonthlyRate converts an annual percentage rate into the periodic monthly
// rate.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) (float64, error) {
	payment, err := tvm.Payment(MonthlyRate(annualInterestRate), termMonths, principal)
	if err != nil {
		return 0, err
	}
	return math.Abs(payment), nil
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyRate(annualInterestRate)
}

// BalanceAfter returns the remaining principal after the given number of
// regular monthly payments. The balance never drops below zero.
func BalanceAfter(principal, annualInterestRate float64, termMonths, months int) (float64, error) {
	payment, err := CalculateMonthlyPayment(principal, annualInterestRate, termMonths)
	if err != nil {
		return 0, err
	}
	balance := principal
	for m := 0; m < months; m++ {
		interest := CalculateInterestPayment(balance, annualInterestRate)
		balance -= payment - interest
	}
	return math.Max(0, balance), nil
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a complete month-by-month amortization schedule
// for a loan.
func (g *AmortizationScheduleGenerator) GenerateSchedule(loan *LoanConfig) ([]Payment, error) {
	if loan == nil {
		return nil, fmt.Errorf("loan cannot be nil")
	}
	monthlyPayment, err := CalculateMonthlyPayment(loan.Principal, loan.InterestRate, loan.Term)
	if err != nil {
		return nil, fmt.Errorf("loan %s: %w", loan.Name, err)
	}

	schedule := make([]Payment, 0, loan.Term)
	remaining := loan.Principal
	for month := 1; month <= loan.Term; month++ {
		var current Payment
		current.Month = month
		current.Payment = monthlyPayment
		current.Interest = CalculateInterestPayment(remaining, loan.InterestRate)
		current.Principal = monthlyPayment - current.Interest

		if month == loan.Term || mathutil.IsZero(remaining-current.Principal) {
			// Absorb accumulated float error into the last payment.
			current.Principal = remaining
			current.Payment = current.Principal + current.Interest
			current.RemainingPrincipal = 0
			schedule = append(schedule, current)
			g.logger.Debug(fmt.Sprintf("loan %s fully repaid in month %d", loan.Name, month),
				zap.String("op", "loans.GenerateSchedule"),
			)
			break
		}
		remaining -= current.Principal
		current.RemainingPrincipal = remaining
		schedule = append(schedule, current)
	}

	return schedule, nil
}

// SummarizeByYear folds a monthly schedule into per-year totals.
func SummarizeByYear(schedule []Payment) []YearSummary {
	var years []YearSummary
	for _, p := range schedule {
		year := (p.Month-1)/constants.MonthsPerYear + 1
		if len(years) < year {
			years = append(years, YearSummary{Year: year})
		}
		y := &years[year-1]
		y.Principal += p.Principal
		y.Interest += p.Interest
		y.RemainingPrincipal = p.RemainingPrincipal
	}
	return years
}

// YearlyBalances returns the remaining principal at the start of the loan and
// after each full year, for termYears+1 points.
func YearlyBalances(principal, annualInterestRate float64, termYears int) ([]float64, error) {
	balances := make([]float64, termYears+1)
	for i := 0; i <= termYears; i++ {
		b, err := BalanceAfter(principal, annualInterestRate, termYears*constants.MonthsPerYear, i*constants.MonthsPerYear)
		if err != nil {
			return nil, err
		}
		balances[i] = b
	}
	return balances, nil
}
