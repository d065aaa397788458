package plan

import (
	"math"

	"github.com/iwvelando/finance-workbook/internal/payroll"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
)

// Cover multiples of monthly income.
const (
	deathCoverMonths           = 6
	criticalIllnessCoverMonths = 12
	permanentInjuryCoverMonths = 18
	disabilityCoverYears       = 20
	liabilityCoverMultiple     = 4.5
	sickBenefitDays            = 30
)

// InsuranceCoverage is the recommended cover for the main earner.
type InsuranceCoverage struct {
	Base             float64 `json:"base"`
	Death            float64 `json:"death"`
	CriticalIllness  float64 `json:"criticalIllness"`
	PermanentInjury  float64 `json:"permanentInjury"`
	SickDailyBenefit float64 `json:"sickDailyBenefit"`
	DisabilityIII    float64 `json:"disabilityIII"`
	Liability        float64 `json:"liability"`
}

// Insurance derives the recommended cover from a monthly income.
func Insurance(base float64) InsuranceCoverage {
	return InsuranceCoverage{
		Base:             base,
		Death:            base * deathCoverMonths,
		CriticalIllness:  base * criticalIllnessCoverMonths,
		PermanentInjury:  base * permanentInjuryCoverMonths,
		SickDailyBenefit: mathutil.Round(base / sickBenefitDays),
		DisabilityIII:    base * constants.MonthsPerYear * disabilityCoverYears,
		Liability:        base * liabilityCoverMultiple,
	}
}

// InsuranceBase is the income the cover is sized on: the gross salary from
// the payroll calculator when available, else the primary income as entered.
func InsuranceBase(manualPrimary float64, salary *payroll.Result) float64 {
	if salary != nil {
		return salary.Gross
	}
	return manualPrimary
}

// IllnessEstimate is the income lost during long-term illness.
type IllnessEstimate struct {
	ShortTermSickPay float64 `json:"shortTermSickPay"`
	DailySickPay     float64 `json:"dailySickPay"`
	MonthlyLoss      float64 `json:"monthlyLoss"`
	// RecommendedDailyBenefit is the daily sickness benefit a private policy
	// should pay to cover MonthlyLoss.
	RecommendedDailyBenefit float64 `json:"recommendedDailyBenefit"`
}

// IllnessIncomeLoss estimates the monthly drop in net income once statutory
// sick pay replaces the salary. It returns a zero estimate without a salary.
func IllnessIncomeLoss(salary *payroll.Result) IllnessEstimate {
	if salary == nil {
		return IllnessEstimate{}
	}
	loss := salary.Net - salary.SickPayDailyRate*constants.WorkingDaysPerMonth
	e := IllnessEstimate{
		ShortTermSickPay: salary.SickPayShortTerm,
		DailySickPay:     salary.SickPayDailyRate,
		MonthlyLoss:      loss,
	}
	if loss > 0 {
		e.RecommendedDailyBenefit = math.Ceil(loss / sickBenefitDays)
	}
	return e
}

// WorstIllnessLoss returns the larger of the two persons' illness estimates.
func WorstIllnessLoss(salaries [2]*payroll.Result) IllnessEstimate {
	a, b := IllnessIncomeLoss(salaries[0]), IllnessIncomeLoss(salaries[1])
	if b.MonthlyLoss > a.MonthlyLoss {
		return b
	}
	return a
}
