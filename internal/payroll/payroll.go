// Package payroll converts a gross salary into take-home pay, employer cost,
// sick-pay figures and a pension estimate under a given rate table.
package payroll

import (
	"math"

	"github.com/iwvelando/finance-workbook/internal/ratetable"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
)

// Input is one person's payroll calculator configuration.
type Input struct {
	GrossMonthly float64 `json:"grossMonthly"`
	Children     int     `json:"children"`
	Disability   bool    `json:"disability"`
	Student      bool    `json:"student"`
	Enabled      bool    `json:"enabled"`
}

// Result holds the monthly figures of one salary computation. All monetary
// fields are whole currency units.
type Result struct {
	Gross          float64 `json:"gross"`
	Net            float64 `json:"net"`
	TaxPaid        float64 `json:"taxPaid"`
	TaxBonus       float64 `json:"taxBonus"`
	EmployeeSocial float64 `json:"employeeSocial"`
	EmployeeHealth float64 `json:"employeeHealth"`
	EmployerSocial float64 `json:"employerSocial"`
	EmployerHealth float64 `json:"employerHealth"`
	EmployerCost   float64 `json:"employerCost"`

	ReducedDailyBase float64 `json:"reducedDailyBase"`
	SickPayShortTerm float64 `json:"sickPayShortTerm"`
	SickPayDailyRate float64 `json:"sickPayDailyRate"`

	EffectiveTaxRate float64 `json:"effectiveTaxRate"`

	// Unrounded monthly gross and the pension parameters of the table the
	// result was computed with.
	grossExact     float64
	pensionBase    float64
	pensionShare   float64
	pensionAccrual float64
}

// PensionEstimate returns the rough monthly state pension after yearsWorked
// years of service at the current salary.
func (r *Result) PensionEstimate(yearsWorked int) float64 {
	if r == nil {
		return 0
	}
	return mathutil.Round(r.pensionBase + r.grossExact*r.pensionShare*r.pensionAccrual*float64(yearsWorked))
}

// ComputeNetSalary computes the monthly payroll figures for an annual gross
// salary. It returns nil when grossAnnual is not positive.
func ComputeNetSalary(table ratetable.Table, grossAnnual float64, children int, disability, student bool) *Result {
	if !(grossAnnual > 0) || math.IsInf(grossAnnual, 0) {
		return nil
	}
	if children < 0 {
		children = 0
	}
	gross := grossAnnual / constants.MonthsPerYear

	liability := math.Min(gross, table.HigherRateThreshold)*table.LowerRate +
		math.Max(0, gross-table.HigherRateThreshold)*table.HigherRate
	liability -= table.TaxpayerCredit
	if student {
		liability -= table.StudentCredit
	}
	if disability {
		liability -= table.DisabilityCredit
	}
	childCredits := table.TotalChildCredits(children)
	liability -= childCredits

	// Only the child credits are refundable.
	final := math.Max(liability, -childCredits)
	taxPaid := math.Max(0, final)
	taxBonus := math.Max(0, -final)

	social := mathutil.Round(gross * table.EmployeeSocialRate)
	health := math.Max(
		mathutil.Round(gross*table.EmployeeHealthRate),
		mathutil.Round(table.MinHealthAssessmentBase*table.EmployeeHealthRate),
	)
	net := gross - taxPaid + taxBonus - social - health

	employerSocial := mathutil.Round(gross * table.EmployerSocialRate)
	employerHealth := mathutil.Round(gross * table.EmployerHealthRate)

	reduced := ReducedDailyBase(table, gross)

	return &Result{
		Gross:          mathutil.Round(gross),
		Net:            mathutil.Round(net),
		TaxPaid:        mathutil.Round(taxPaid),
		TaxBonus:       mathutil.Round(taxBonus),
		EmployeeSocial: social,
		EmployeeHealth: health,
		EmployerSocial: employerSocial,
		EmployerHealth: employerHealth,
		EmployerCost:   mathutil.Round(gross + employerSocial + employerHealth),

		ReducedDailyBase: reduced,
		SickPayShortTerm: mathutil.Round(reduced * table.SickPayRate * float64(table.SickPayShortTermDays)),
		SickPayDailyRate: mathutil.Round(reduced * table.SickPayRate),

		EffectiveTaxRate: taxPaid / gross,

		grossExact:     gross,
		pensionBase:    table.PensionBaseAmount,
		pensionShare:   table.PensionGrossShare,
		pensionAccrual: table.PensionAccrualRate,
	}
}

// ComputeForInput runs ComputeNetSalary for a calculator configuration. It
// returns nil when the calculator is disabled or has no gross salary.
func ComputeForInput(table ratetable.Table, in Input) *Result {
	if !in.Enabled {
		return nil
	}
	return ComputeNetSalary(table, in.GrossMonthly*constants.MonthsPerYear, in.Children, in.Disability, in.Student)
}

// ReducedDailyBase applies the regressive sick-pay bands to the daily
// assessment base derived from a monthly gross. Amounts above the last band
// ceiling are not credited.
func ReducedDailyBase(table ratetable.Table, grossMonthly float64) float64 {
	if table.DaysPerMonth <= 0 {
		return 0
	}
	daily := grossMonthly / table.DaysPerMonth
	reduced := 0.0
	floor := 0.0
	for _, band := range table.SickPayBands {
		reduced += mathutil.Band(daily, floor, band.Ceiling) * band.Rate
		floor = band.Ceiling
	}
	return mathutil.Round(reduced)
}
