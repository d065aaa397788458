package plan

import (
	"time"

	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/internal/payroll"
	"github.com/iwvelando/finance-workbook/internal/ratetable"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/datetime"
	"go.uber.org/zap"
)

// Plan note sections an advisor can annotate.
const (
	NoteSummary    = "summary"
	NoteCashflow   = "cashflow"
	NoteInsurance  = "insurance"
	NoteGoals      = "goals"
	NoteConclusion = "conclusion"
)

// NoteSections lists the plan note sections in document order.
var NoteSections = []string{NoteSummary, NoteCashflow, NoteInsurance, NoteGoals, NoteConclusion}

// Workbook is everything derived from one household record.
type Workbook struct {
	Client   string    `json:"client"`
	Date     time.Time `json:"date"`
	Year     int       `json:"year"`
	RateYear int       `json:"rateYear"`

	// Ages of both persons; 0 when the birth year is unknown.
	Ages [2]int `json:"ages"`

	Salaries        [2]*payroll.Result `json:"salaries"`
	Summary         Summary            `json:"summary"`
	Goals           []GoalSchedule     `json:"goals"`
	Insurance       InsuranceCoverage  `json:"insurance"`
	Illness         IllnessEstimate    `json:"illness"`
	Contracts       ContractOverview   `json:"contracts"`
	Retirement      RetirementPlan     `json:"retirement"`
	RetirementInput RetirementInput    `json:"retirementInput"`
	Alerts          []Alert            `json:"alerts"`
	Recommendations []Recommendation   `json:"recommendations"`
	Notes           map[string]string  `json:"notes"`
}

// Assumptions are the planning defaults an advisor may tune.
type Assumptions struct {
	InflationRate       float64 `json:"inflationRate"`
	RetirementAge       int     `json:"retirementAge"`
	RetirementSpending  float64 `json:"retirementSpending"`
	AnnualReturnPercent float64 `json:"annualReturnPercent"`
	PayoutYears         int     `json:"payoutYears"`
}

// DefaultAssumptions returns the built-in planning defaults.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		InflationRate:       constants.DefaultInflationRate,
		RetirementAge:       constants.DefaultRetirementAge,
		RetirementSpending:  constants.DefaultRetirementSpending,
		AnnualReturnPercent: constants.DefaultRetirementReturn,
		PayoutYears:         constants.DefaultPayoutYears,
	}
}

// Evaluate recomputes the whole workbook for a household at time now using
// the default assumptions.
func Evaluate(logger *zap.Logger, h *household.Household, table ratetable.Table, now time.Time) Workbook {
	return EvaluateWith(logger, h, table, now, DefaultAssumptions())
}

// EvaluateWith recomputes the whole workbook with the given assumptions.
func EvaluateWith(logger *zap.Logger, h *household.Household, table ratetable.Table, now time.Time, a Assumptions) Workbook {
	if logger == nil {
		logger = zap.NewNop()
	}
	if h == nil {
		h = household.New()
	}
	year := now.Year()

	salaries := Salaries(h, table)
	summary := summarize(h, salaries, year, a.InflationRate)
	goals, _ := Goals(h.Goals, year, a.InflationRate)
	illness := WorstIllnessLoss(salaries)
	retirementInput := DefaultRetirementInput(h.Persons[0].BirthYear.Int(), year, salaries[0])
	retirementInput.RetirementAge = a.RetirementAge
	retirementInput.MonthlySpending = a.RetirementSpending
	retirementInput.AnnualReturnPercent = a.AnnualReturnPercent
	retirementInput.PayoutYears = a.PayoutYears

	wb := Workbook{
		Client:          h.Name(),
		Date:            now,
		Year:            year,
		RateYear:        table.Year,
		Salaries:        salaries,
		Summary:         summary,
		Goals:           goals,
		Insurance:       Insurance(InsuranceBase(h.Persons[0].PrimaryIncome.Float(), salaries[0])),
		Illness:         illness,
		Contracts:       Contracts(h.Contracts, now.Format(datetime.DateLayout)),
		Retirement:      RetirementGap(retirementInput),
		RetirementInput: retirementInput,
		Alerts:          Alerts(summary, illness, salaries[0] != nil || salaries[1] != nil),
		Recommendations: Recommendations(summary),
		Notes:           h.PlanNotes,
	}
	for i, p := range h.Persons {
		wb.Ages[i] = datetime.Age(p.BirthYear.Int(), year, 0)
	}

	logger.Debug("evaluated household workbook",
		zap.String("op", "plan.Evaluate"),
		zap.String("client", wb.Client),
		zap.Int("rateYear", table.Year),
		zap.Float64("income", summary.Income),
		zap.Float64("cashflow", summary.Cashflow),
		zap.Int("alerts", len(wb.Alerts)),
	)
	return wb
}
