package numeric

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Plain integer", "50000", 50000},
		{"Decimal dot", "4.5", 4.5},
		{"Decimal comma", "4,5", 4.5},
		{"Space separated thousands", "1 250 000", 1250000},
		{"Non-breaking space separators", "1\u00a0250\u202f000", 1250000},
		{"Currency suffix", "12 500 Kč", 12500},
		{"Percent suffix", "6 %", 6},
		{"Negative", "-300", -300},
		{"Empty", "", 0},
		{"Whitespace only", "   ", 0},
		{"Garbage", "abc", 0},
		{"Trailing garbage", "12abc", 0},
		{"Out of range", "1e400", 0},
		{"Out of range negative", "-1e400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input); got != tt.expected {
				t.Errorf("Parse(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAmountUnmarshalJSON(t *testing.T) {
	type doc struct {
		A Amount `json:"a"`
	}

	tests := []struct {
		name     string
		input    string
		expected Amount
	}{
		{"Number", `{"a": 1500.5}`, 1500.5},
		{"Numeric string", `{"a": "1500"}`, 1500},
		{"Empty string", `{"a": ""}`, 0},
		{"Null", `{"a": null}`, 0},
		{"Boolean", `{"a": true}`, 0},
		{"Text", `{"a": "n/a"}`, 0},
		{"Missing", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d doc
			if err := json.Unmarshal([]byte(tt.input), &d); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if d.A != tt.expected {
				t.Errorf("Unmarshal(%s) = %v, expected %v", tt.input, d.A, tt.expected)
			}
		})
	}
}

func TestAmountMarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Amount `json:"a"`
	}{A: 39570})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"a":39570}` {
		t.Errorf("Marshal() = %s", out)
	}
}

func TestAmountInt(t *testing.T) {
	if got := Amount(3.9).Int(); got != 3 {
		t.Errorf("Amount(3.9).Int() = %d, expected 3", got)
	}
	if got := Amount(-2).Int(); got != 0 {
		t.Errorf("Amount(-2).Int() = %d, expected 0", got)
	}
}
