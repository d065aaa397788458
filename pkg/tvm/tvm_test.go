package tvm

import (
	"errors"
	"math"
	"testing"
)

func TestFutureValueZeroRate(t *testing.T) {
	tests := []struct {
		name    string
		periods int
		payment float64
		pv      float64
	}{
		{"Payments only", 12, -100, 0},
		{"Present value only", 5, 0, -1000},
		{"Both", 24, -250, -5000},
		{"Zero periods", 0, -250, -5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FutureValue(0, tt.periods, tt.payment, tt.pv)
			want := -(tt.pv + tt.payment*float64(tt.periods))
			if got != want {
				t.Errorf("FutureValue(0, %d, %v, %v) = %v, expected %v", tt.periods, tt.payment, tt.pv, got, want)
			}
		})
	}
}

func TestFutureValueCompound(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		periods  int
		payment  float64
		pv       float64
		expected float64
	}{
		{"Lump sum at 2% for 10 years", 0.02, 10, 0, -1000000, 1218994.42},
		{"Monthly savings 1000 at 0.5% for 12 months", 0.005, 12, -1000, 0, 12335.56},
		{"Sign follows outflow convention", 0.05, 1, 0, 100, -105},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FutureValue(tt.rate, tt.periods, tt.payment, tt.pv)
			if math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("FutureValue() = %.4f, expected %.2f", got, tt.expected)
			}
		})
	}
}

func TestPayment(t *testing.T) {
	tests := []struct {
		name          string
		rate          float64
		periods       int
		pv            float64
		expectedRange []float64
	}{
		{"30-year mortgage at 6%", 0.06 / 12, 360, 240000, []float64{-1439.0, -1438.0}},
		{"Zero interest", 0, 60, 12000, []float64{-200, -200}},
		{"Negative present value gives positive payment", 0.01, 12, -1000, []float64{88.84, 88.86}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Payment(tt.rate, tt.periods, tt.pv)
			if err != nil {
				t.Fatalf("Payment() error = %v", err)
			}
			if got < tt.expectedRange[0] || got > tt.expectedRange[1] {
				t.Errorf("Payment() = %.4f, expected range [%.2f, %.2f]", got, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestPaymentZeroPeriods(t *testing.T) {
	for _, rate := range []float64{0, 0.01} {
		if _, err := Payment(rate, 0, 1000); !errors.Is(err, ErrZeroPeriods) {
			t.Errorf("Payment(%v, 0, 1000) error = %v, expected ErrZeroPeriods", rate, err)
		}
	}
}

func TestPaymentInvertsFutureValue(t *testing.T) {
	cases := []struct {
		rate    float64
		periods int
		pv      float64
	}{
		{0.045 / 12, 300, 4000000},
		{0.01, 36, 10000},
		{0.2, 5, 500},
		{0, 120, 1000000},
	}

	for _, c := range cases {
		pmt, err := Payment(c.rate, c.periods, c.pv)
		if err != nil {
			t.Fatalf("Payment() error = %v", err)
		}
		fv := FutureValue(c.rate, c.periods, pmt, c.pv)
		if math.Abs(fv) > 1e-6*math.Max(1, math.Abs(c.pv)) {
			t.Errorf("rate %v periods %d: FutureValue after amortizing = %v, expected ~0", c.rate, c.periods, fv)
		}
	}
}

func TestAnnuityPresentValue(t *testing.T) {
	if got := AnnuityPresentValue(0, 300, 20000); got != 6000000 {
		t.Errorf("zero-rate AnnuityPresentValue = %v, expected 6000000", got)
	}
	if got := AnnuityPresentValue(0.01, 0, 20000); got != 0 {
		t.Errorf("zero-period AnnuityPresentValue = %v, expected 0", got)
	}

	// Continuous as the rate approaches zero.
	near := AnnuityPresentValue(1e-9, 300, 20000)
	if math.Abs(near-6000000) > 1 {
		t.Errorf("AnnuityPresentValue near zero rate = %v, expected ~6000000", near)
	}

	// The annuity it funds is exactly the Payment on that capital.
	rate := 0.06 / 12
	pv := AnnuityPresentValue(rate, 300, 20000)
	pmt, err := Payment(rate, 300, pv)
	if err != nil {
		t.Fatalf("Payment() error = %v", err)
	}
	if math.Abs(pmt+20000) > 1e-6 {
		t.Errorf("Payment on annuity capital = %v, expected -20000", pmt)
	}
}

func TestInflateAndDeflate(t *testing.T) {
	inflated := Inflate(1000000, 0.02, 10)
	if math.Abs(inflated-1218994.42) > 0.01 {
		t.Errorf("Inflate() = %.2f, expected 1218994.42", inflated)
	}
	if back := Deflate(inflated, 0.02, 10); math.Abs(back-1000000) > 1e-6 {
		t.Errorf("Deflate(Inflate()) = %v, expected 1000000", back)
	}
	if got := Deflate(1000000, 0.03, 0); got != 1000000 {
		t.Errorf("Deflate over zero years = %v, expected 1000000", got)
	}
}
