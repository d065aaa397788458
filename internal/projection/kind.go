package projection

import (
	"errors"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/finance-workbook/internal/plan"
	"go.uber.org/zap"
)

// Scenario kinds accepted by Run.
const (
	KindMortgage   = "mortgage"
	KindLoan       = "loan"
	KindInvestment = "investment"
	KindInflation  = "inflation"
	KindRetirement = "retirement"
	KindAllocation = "allocation"
)

var (
	// ErrUnknownKind is returned for a scenario kind Run does not know.
	ErrUnknownKind = errors.New("unknown projection kind")
	// ErrInvalidScenario is returned when scenario parameters cannot be decoded.
	ErrInvalidScenario = errors.New("invalid projection scenario")
)

type runner func(logger *zap.Logger, data []byte) (any, error)

var runners = map[string]runner{
	KindMortgage: func(_ *zap.Logger, data []byte) (any, error) {
		s := DefaultMortgage()
		if err := decode(data, &s); err != nil {
			return nil, err
		}
		return Mortgage(s)
	},
	KindLoan: func(logger *zap.Logger, data []byte) (any, error) {
		s := DefaultLoan()
		if err := decode(data, &s); err != nil {
			return nil, err
		}
		return Loan(logger, s)
	},
	KindInvestment: func(_ *zap.Logger, data []byte) (any, error) {
		s := DefaultInvestment()
		if err := decode(data, &s); err != nil {
			return nil, err
		}
		return Investment(s), nil
	},
	KindInflation: func(_ *zap.Logger, data []byte) (any, error) {
		s := DefaultInflation()
		if err := decode(data, &s); err != nil {
			return nil, err
		}
		return Inflation(s), nil
	},
	KindRetirement: func(_ *zap.Logger, data []byte) (any, error) {
		s := plan.DefaultRetirementInput(0, 0, nil)
		if err := decode(data, &s); err != nil {
			return nil, err
		}
		s.PayoutYears = clampYears(s.PayoutYears)
		return plan.RetirementGap(s), nil
	},
	KindAllocation: func(_ *zap.Logger, data []byte) (any, error) {
		s := DefaultAllocation()
		if err := decode(data, &s); err != nil {
			return nil, err
		}
		return Allocation(s), nil
	},
}

// Kinds lists the supported scenario kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(runners))
	for k := range runners {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Run decodes the JSON parameters of a scenario over its defaults and runs
// it. Empty data runs the defaults.
func Run(logger *zap.Logger, kind string, data []byte) (any, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	run, ok := runners[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	result, err := run(logger, data)
	if err != nil {
		return nil, err
	}
	logger.Debug("ran projection",
		zap.String("op", "projection.Run"),
		zap.String("kind", kind),
	)
	return result, nil
}

func decode(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	return nil
}
