package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/finance-workbook/internal/household"
	"github.com/iwvelando/finance-workbook/internal/plan"
	"github.com/iwvelando/finance-workbook/internal/ratetable"
	"github.com/iwvelando/finance-workbook/pkg/numeric"
)

func sampleWorkbook() plan.Workbook {
	h := household.New()
	h.Persons[0].FirstName = "Jana"
	h.Persons[0].LastName = "Nováková"
	h.Persons[0].BirthYear = 1988
	h.Payroll[0].GrossMonthly = 50000
	h.Persons[1].PrimaryIncome = 36000
	h.Expenses.Housing = 22000
	h.Expenses.Other = 18000
	h.Liabilities.Mortgage.RemainingBalance = 3200000
	h.Liabilities.Mortgage.MonthlyPayment = 17500
	h.Goals[0] = household.Goal{Name: "Nové auto", TargetYear: numeric.Amount(2031), Amount: 600000}
	h.PlanNotes[plan.NoteSummary] = "Klienti plánují koupi většího bytu."
	h.PlanNotes[plan.NoteConclusion] = "Follow up in six months."

	return plan.Evaluate(nil, h, ratetable.CZ2025(), time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		wb   plan.Workbook
	}{
		{"Full household", sampleWorkbook()},
		{"Empty household", plan.Evaluate(nil, nil, ratetable.CZ2025(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"Zero workbook", plan.Workbook{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tt.wb); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
				t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(8, buf.Len())])
			}
			if !bytes.Contains(buf.Bytes(), []byte("%%EOF")) {
				t.Error("output is missing the PDF trailer")
			}
		})
	}
}

func TestRenderNilWriter(t *testing.T) {
	if err := Render(nil, plan.Workbook{}); err == nil {
		t.Error("expected an error for a nil writer")
	}
}

func TestPlainText(t *testing.T) {
	identity := func(s string) string { return s }
	fold := plainText(identity)

	tests := []struct {
		input    string
		expected string
	}{
		{"Nováková", "Novakova"},
		{"Příjmy a výdaje", "Prijmy a vydaje"},
		{"12 500 Kč", "12 500 Kc"},
		{"—", "—"},
		{"2.50×", "2.50×"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := fold(tt.input); got != tt.expected {
				t.Errorf("plainText(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}

	upper := plainText(strings.ToUpper)
	if got := upper("čas"); got != "CAS" {
		t.Errorf("plainText should translate after folding, got %q", got)
	}
}
