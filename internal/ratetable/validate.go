package ratetable

import (
	"fmt"

	"github.com/iwvelando/finance-workbook/pkg/validation"
)

// Validate checks the table invariants: every rate lies in [0, 1], every
// amount is non-negative and the sick-pay band ceilings strictly increase.
// It returns all violations found.
func (t Table) Validate() []error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	rates := []struct {
		name string
		v    float64
	}{
		{"lowerRate", t.LowerRate},
		{"higherRate", t.HigherRate},
		{"employeeSocialRate", t.EmployeeSocialRate},
		{"employeeHealthRate", t.EmployeeHealthRate},
		{"employerSocialRate", t.EmployerSocialRate},
		{"employerHealthRate", t.EmployerHealthRate},
		{"sickPayRate", t.SickPayRate},
		{"pensionGrossShare", t.PensionGrossShare},
		{"pensionAccrualRate", t.PensionAccrualRate},
	}
	for _, r := range rates {
		add(validation.ValidateRate(r.name, r.v))
	}

	amounts := []struct {
		name string
		v    float64
	}{
		{"higherRateThreshold", t.HigherRateThreshold},
		{"taxpayerCredit", t.TaxpayerCredit},
		{"studentCredit", t.StudentCredit},
		{"disabilityCredit", t.DisabilityCredit},
		{"minHealthAssessmentBase", t.MinHealthAssessmentBase},
		{"pensionBaseAmount", t.PensionBaseAmount},
	}
	for _, a := range amounts {
		add(validation.ValidateNonNegative(a.name, a.v))
	}
	for i, c := range t.ChildCredits {
		add(validation.ValidateNonNegative(fmt.Sprintf("childCredits[%d]", i), c))
	}

	if t.LowerRate > t.HigherRate {
		errs = append(errs, fmt.Errorf("lowerRate %v exceeds higherRate %v", t.LowerRate, t.HigherRate))
	}
	if t.DaysPerMonth <= 0 {
		errs = append(errs, fmt.Errorf("daysPerMonth must be positive, got %v", t.DaysPerMonth))
	}
	if t.SickPayShortTermDays < 0 {
		errs = append(errs, fmt.Errorf("sickPayShortTermDays must not be negative, got %d", t.SickPayShortTermDays))
	}

	ceilings := make([]float64, len(t.SickPayBands))
	for i, b := range t.SickPayBands {
		ceilings[i] = b.Ceiling
		add(validation.ValidateRate(fmt.Sprintf("sickPayBands[%d].rate", i), b.Rate))
	}
	add(validation.ValidateAscending("sickPayBands", ceilings))

	return errs
}
