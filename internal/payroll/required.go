package payroll

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/finance-workbook/internal/ratetable"
	"github.com/iwvelando/finance-workbook/pkg/constants"
)

const (
	searchTolerance     = 0.01
	searchMaxIterations = 200
	searchCeiling       = 1e9
)

// ErrUnreachableNet is returned when no gross salary below the search ceiling
// yields the requested net salary.
var ErrUnreachableNet = errors.New("target net salary is out of reach")

// RequiredGross finds the whole monthly gross salary whose net salary first
// reaches targetNet. It bisects over the gross, so it relies on net pay
// growing with gross pay.
func RequiredGross(table ratetable.Table, targetNet float64, children int, disability, student bool) (float64, error) {
	if !(targetNet > 0) {
		return 0, nil
	}

	net := func(gross float64) float64 {
		r := ComputeNetSalary(table, gross*constants.MonthsPerYear, children, disability, student)
		if r == nil {
			return 0
		}
		return r.Net
	}

	lower := 0.0
	upper := targetNet
	for net(upper) < targetNet {
		lower = upper
		upper *= 2
		if upper > searchCeiling {
			return 0, fmt.Errorf("%w: %.0f", ErrUnreachableNet, targetNet)
		}
	}

	iterations := 0
	for iterations < searchMaxIterations && math.Abs(upper-lower) > searchTolerance {
		mid := lower + (upper-lower)/2
		if net(mid) >= targetNet {
			upper = mid
		} else {
			lower = mid
		}
		iterations++
	}

	return math.Ceil(upper), nil
}
