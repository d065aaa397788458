// Package ratetable holds the statutory rates and thresholds the payroll
// engine computes with. A Table is a plain value: callers pass it explicitly
// to every computation, so tables for different reference years can coexist.
package ratetable

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownYear is returned when no table is registered for a reference year.
var ErrUnknownYear = errors.New("no rate table for reference year")

// Band is one segment of the regressive reduction applied to the daily
// assessment base for sick pay. The band covers the range from the previous
// band's ceiling up to Ceiling and is credited at Rate.
type Band struct {
	Ceiling float64 `yaml:"ceiling" mapstructure:"ceiling" json:"ceiling"`
	Rate    float64 `yaml:"rate" mapstructure:"rate" json:"rate"`
}

// Table is the rate table for one reference year. Monetary amounts are
// monthly unless noted otherwise.
type Table struct {
	Year int `yaml:"year" mapstructure:"year" json:"year"`

	// Income tax
	LowerRate           float64 `yaml:"lowerRate" mapstructure:"lowerRate" json:"lowerRate"`
	HigherRate          float64 `yaml:"higherRate" mapstructure:"higherRate" json:"higherRate"`
	HigherRateThreshold float64 `yaml:"higherRateThreshold" mapstructure:"higherRateThreshold" json:"higherRateThreshold"`

	// Tax credits
	TaxpayerCredit   float64    `yaml:"taxpayerCredit" mapstructure:"taxpayerCredit" json:"taxpayerCredit"`
	StudentCredit    float64    `yaml:"studentCredit" mapstructure:"studentCredit" json:"studentCredit"`
	DisabilityCredit float64    `yaml:"disabilityCredit" mapstructure:"disabilityCredit" json:"disabilityCredit"`
	ChildCredits     [3]float64 `yaml:"childCredits" mapstructure:"childCredits" json:"childCredits"` // 1st, 2nd, 3rd and each further child

	// Contributions
	EmployeeSocialRate      float64 `yaml:"employeeSocialRate" mapstructure:"employeeSocialRate" json:"employeeSocialRate"`
	EmployeeHealthRate      float64 `yaml:"employeeHealthRate" mapstructure:"employeeHealthRate" json:"employeeHealthRate"`
	EmployerSocialRate      float64 `yaml:"employerSocialRate" mapstructure:"employerSocialRate" json:"employerSocialRate"`
	EmployerHealthRate      float64 `yaml:"employerHealthRate" mapstructure:"employerHealthRate" json:"employerHealthRate"`
	MinHealthAssessmentBase float64 `yaml:"minHealthAssessmentBase" mapstructure:"minHealthAssessmentBase" json:"minHealthAssessmentBase"`

	// Sick pay
	DaysPerMonth         float64 `yaml:"daysPerMonth" mapstructure:"daysPerMonth" json:"daysPerMonth"`
	SickPayBands         []Band  `yaml:"sickPayBands" mapstructure:"sickPayBands" json:"sickPayBands"`
	SickPayRate          float64 `yaml:"sickPayRate" mapstructure:"sickPayRate" json:"sickPayRate"`
	SickPayShortTermDays int     `yaml:"sickPayShortTermDays" mapstructure:"sickPayShortTermDays" json:"sickPayShortTermDays"`

	// Pension estimate
	PensionBaseAmount  float64 `yaml:"pensionBaseAmount" mapstructure:"pensionBaseAmount" json:"pensionBaseAmount"`
	PensionGrossShare  float64 `yaml:"pensionGrossShare" mapstructure:"pensionGrossShare" json:"pensionGrossShare"`
	PensionAccrualRate float64 `yaml:"pensionAccrualRate" mapstructure:"pensionAccrualRate" json:"pensionAccrualRate"`
}

// CZ2025 returns the Czech 2025 reference table.
func CZ2025() Table {
	return Table{
		Year: 2025,

		LowerRate:           0.15,
		HigherRate:          0.23,
		HigherRateThreshold: 131901,

		TaxpayerCredit:   30840.0 / 12,
		StudentCredit:    335,
		DisabilityCredit: 210,
		ChildCredits:     [3]float64{15204.0 / 12, 22320.0 / 12, 27840.0 / 12},

		EmployeeSocialRate:      0.065,
		EmployeeHealthRate:      0.045,
		EmployerSocialRate:      0.248,
		EmployerHealthRate:      0.09,
		MinHealthAssessmentBase: 17300,

		DaysPerMonth: 30,
		SickPayBands: []Band{
			{Ceiling: 1466, Rate: 0.90},
			{Ceiling: 2199, Rate: 0.60},
			{Ceiling: 4399, Rate: 0.30},
		},
		SickPayRate:          0.60,
		SickPayShortTermDays: 14,

		PensionBaseAmount:  4040,
		PensionGrossShare:  0.80,
		PensionAccrualRate: 0.015,
	}
}

// Default returns the table used when nothing else is configured.
func Default() Table {
	return CZ2025()
}

var builtin = map[int]func() Table{
	2025: CZ2025,
}

// ForYear returns the built-in table for a reference year.
func ForYear(year int) (Table, error) {
	build, ok := builtin[year]
	if !ok {
		return Table{}, fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
	return build(), nil
}

// Years lists the reference years with a built-in table, ascending.
func Years() []int {
	years := make([]int, 0, len(builtin))
	for y := range builtin {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	c := t
	c.SickPayBands = append([]Band(nil), t.SickPayBands...)
	return c
}

// ChildCredit returns the monthly credit for the n-th child (1-based).
func (t Table) ChildCredit(n int) float64 {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return t.ChildCredits[0]
	case n == 2:
		return t.ChildCredits[1]
	default:
		return t.ChildCredits[2]
	}
}

// TotalChildCredits sums the per-child credits for the given number of
// children.
func (t Table) TotalChildCredits(children int) float64 {
	switch {
	case children <= 0:
		return 0
	case children == 1:
		return t.ChildCredits[0]
	case children == 2:
		return t.ChildCredits[0] + t.ChildCredits[1]
	default:
		return t.ChildCredits[0] + t.ChildCredits[1] + float64(children-2)*t.ChildCredits[2]
	}
}

// LoadFile reads a YAML table from path. Fields absent from the file keep the
// value from base, so a file may override just a few rates.
func LoadFile(path string, base Table) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read rate table: %w", err)
	}
	t := base.Clone()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("failed to parse rate table %s: %w", path, err)
	}
	if errs := t.Validate(); len(errs) > 0 {
		return Table{}, fmt.Errorf("invalid rate table %s: %w", path, errors.Join(errs...))
	}
	return t, nil
}
