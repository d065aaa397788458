package plan

import (
	"math"

	"github.com/iwvelando/finance-workbook/internal/payroll"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/datetime"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
	"github.com/iwvelando/finance-workbook/pkg/tvm"
)

// RetirementInput configures the retirement gap calculation.
type RetirementInput struct {
	Age                 int     `json:"age"`
	RetirementAge       int     `json:"retirementAge"`
	MonthlySpending     float64 `json:"monthlySpending"`
	StatePension        float64 `json:"statePension"`
	AnnualReturnPercent float64 `json:"annualReturnPercent"`
	PayoutYears         int     `json:"payoutYears"`
}

// DefaultRetirementInput prefills the calculation for the first person. The
// state pension comes from the payroll estimate when a salary is known.
func DefaultRetirementInput(birthYear, currentYear int, salary *payroll.Result) RetirementInput {
	in := RetirementInput{
		Age:                 datetime.Age(birthYear, currentYear, constants.DefaultAge),
		RetirementAge:       constants.DefaultRetirementAge,
		MonthlySpending:     constants.DefaultRetirementSpending,
		StatePension:        constants.DefaultStatePension,
		AnnualReturnPercent: constants.DefaultRetirementReturn,
		PayoutYears:         constants.DefaultPayoutYears,
	}
	if salary != nil {
		in.StatePension = salary.PensionEstimate(constants.DefaultYearsWorked)
	}
	return in
}

// RetirementPlan is the capital needed to cover the gap between spending and
// state pension, and the saving that builds it.
type RetirementPlan struct {
	YearsToRetirement   int            `json:"yearsToRetirement"`
	MonthlyDeficit      float64        `json:"monthlyDeficit"`
	AnnualDeficit       float64        `json:"annualDeficit"`
	RequiredCapital     float64        `json:"requiredCapital"`
	MonthlyContribution float64        `json:"monthlyContribution"`
	PensionCoverage     mathutil.Ratio `json:"pensionCoverage"`
	// Accumulation is the saved capital at the start and after each year.
	Accumulation []float64 `json:"accumulation"`
}

// RetirementGap computes the retirement plan. The capital is the present value
// of the monthly deficit paid over the payout years and the contribution is
// the level monthly saving whose future value at retirement equals it.
func RetirementGap(in RetirementInput) RetirementPlan {
	years := in.RetirementAge - in.Age
	if years < 1 {
		years = 1
	}
	if years > constants.MaxProjectionYears {
		years = constants.MaxProjectionYears
	}
	rate := mathutil.PercentToRate(in.AnnualReturnPercent) / constants.MonthsPerYear
	deficit := math.Max(0, in.MonthlySpending-in.StatePension)

	p := RetirementPlan{
		YearsToRetirement: years,
		MonthlyDeficit:    deficit,
		AnnualDeficit:     deficit * constants.MonthsPerYear,
		RequiredCapital:   tvm.AnnuityPresentValue(rate, in.PayoutYears*constants.MonthsPerYear, deficit),
		PensionCoverage:   mathutil.Divide(in.StatePension, in.MonthlySpending),
		Accumulation:      make([]float64, years+1),
	}

	months := years * constants.MonthsPerYear
	if p.RequiredCapital > 0 {
		p.MonthlyContribution = p.RequiredCapital / math.Abs(tvm.FutureValue(rate, months, -1, 0))
	}

	capital := 0.0
	for y := 1; y <= years; y++ {
		for m := 0; m < constants.MonthsPerYear; m++ {
			capital = capital*(1+rate) + p.MonthlyContribution
		}
		p.Accumulation[y] = capital
	}
	return p
}
