package plan

import (
	"math"

	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/datetime"
	"github.com/iwvelando/finance-workbook/pkg/tvm"
)

// GoalSchedule is the funding plan for one goal.
type GoalSchedule struct {
	Name           string  `json:"name"`
	TargetYear     int     `json:"targetYear"`
	Amount         float64 `json:"amount"`
	Horizon        int     `json:"horizon"`
	InflatedTarget float64 `json:"inflatedTarget"`
	Monthly        float64 `json:"monthly"`
}

// GoalFunding inflates the goal amount to its target year and spreads it over
// the months left. A goal due this year or earlier has a zero contribution.
func GoalFunding(goal household.Goal, currentYear int, inflation float64) GoalSchedule {
	s := GoalSchedule{
		Name:       goal.Name,
		TargetYear: goal.TargetYear.Int(),
		Amount:     goal.Amount.Float(),
		Horizon:    datetime.YearsUntil(goal.TargetYear.Int(), currentYear),
	}
	s.InflatedTarget = s.Amount
	if s.Horizon > 0 && s.Amount != 0 {
		s.InflatedTarget = math.Abs(tvm.Inflate(s.Amount, inflation, s.Horizon))
	}
	if s.Horizon > 0 && s.InflatedTarget > 0 {
		s.Monthly = s.InflatedTarget / constants.MonthsPerYear / float64(s.Horizon)
	}
	return s
}

// Goals computes the schedule of every non-empty goal and the total monthly
// contribution they require.
func Goals(goals []household.Goal, currentYear int, inflation float64) ([]GoalSchedule, float64) {
	schedules := make([]GoalSchedule, 0, len(goals))
	total := 0.0
	for _, g := range goals {
		if g.Empty() {
			continue
		}
		s := GoalFunding(g, currentYear, inflation)
		schedules = append(schedules, s)
		total += s.Monthly
	}
	return schedules, total
}
