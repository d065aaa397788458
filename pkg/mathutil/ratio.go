package mathutil

// Ratio is a quotient that may be undefined, e.g. a savings rate for a
// household without income. Undefined ratios are displayed as a dash.
type Ratio struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// Undefined is the sentinel returned for a ratio with a zero denominator.
var Undefined = Ratio{}

// Divide returns numerator/denominator, or Undefined when the denominator is
// zero or the quotient is not finite.
func Divide(numerator, denominator float64) Ratio {
	if denominator == 0 {
		return Undefined
	}
	v := numerator / denominator
	if !Finite(v) {
		return Undefined
	}
	return Ratio{Value: v, Defined: true}
}

// Below reports whether the ratio is defined and strictly below limit.
func (r Ratio) Below(limit float64) bool {
	return r.Defined && r.Value < limit
}

// Above reports whether the ratio is defined and strictly above limit.
func (r Ratio) Above(limit float64) bool {
	return r.Defined && r.Value > limit
}

// Or returns the ratio value or fallback when undefined.
func (r Ratio) Or(fallback float64) float64 {
	if !r.Defined {
		return fallback
	}
	return r.Value
}
