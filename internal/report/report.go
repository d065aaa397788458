// Package report renders the financial plan document as a PDF.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/finance-workbook/internal/plan"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/format"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Section titles in document order.
var sectionTitles = map[string]string{
	plan.NoteSummary:    "1. Household overview",
	plan.NoteCashflow:   "2. Income and expenses",
	plan.NoteInsurance:  "3. Insurance",
	plan.NoteGoals:      "4. Goals and retirement",
	plan.NoteConclusion: "5. Conclusion and recommendations",
}

const (
	pageWidth   = 180.0
	labelWidth  = 110.0
	valueWidth  = pageWidth - labelWidth
	lineHeight  = 7.0
	fontFamily  = "Helvetica"
	titleSize   = 18
	headingSize = 13
	bodySize    = 10
)

type document struct {
	pdf  *gofpdf.Fpdf
	text func(string) string
}

// Render writes the plan document of a workbook to w.
func Render(w io.Writer, wb plan.Workbook) error {
	if w == nil {
		return errors.New("report: nil writer")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Financial plan", true)
	pdf.SetAuthor("finance-workbook", true)
	pdf.SetAutoPageBreak(true, 15)

	d := &document{pdf: pdf, text: plainText(pdf.UnicodeTranslatorFromDescriptor(""))}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 8, d.text(wb.Client+" - page "+strconv.Itoa(pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	d.title(wb)
	d.overview(wb)
	d.cashflow(wb)
	d.insurance(wb)
	d.goals(wb)
	d.conclusion(wb)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render plan document: %w", err)
	}
	return nil
}

func (d *document) title(wb plan.Workbook) {
	d.pdf.SetFont(fontFamily, "B", titleSize)
	d.pdf.CellFormat(0, 10, d.text("Financial plan"), "", 1, "L", false, 0, "")
	d.pdf.SetFont(fontFamily, "", bodySize)
	d.pdf.CellFormat(0, lineHeight, d.text("Client: "+wb.Client), "", 1, "L", false, 0, "")
	d.pdf.CellFormat(0, lineHeight, d.text("Date: "+wb.Date.Format(constants.DateLayout)), "", 1, "L", false, 0, "")
	d.pdf.CellFormat(0, lineHeight, d.text(fmt.Sprintf("Rates: %d", wb.RateYear)), "", 1, "L", false, 0, "")
	d.pdf.Ln(4)
}

func (d *document) overview(wb plan.Workbook) {
	s := wb.Summary
	d.heading(sectionTitles[plan.NoteSummary])
	d.row("Monthly income", format.Currency(s.Income))
	d.row("Monthly expenses", format.Currency(s.Expenses))
	d.row("Cashflow", format.Currency(s.Cashflow))
	d.row("Savings rate", format.Ratio(s.SavingsRate))
	d.row("Assets", format.Millions(s.Assets))
	d.row("Liabilities", format.Millions(s.Liabilities))
	d.row("Net worth", format.Millions(s.NetWorth))
	d.row("Debt to annual income", format.Multiple(s.DebtToIncome))
	for i, age := range wb.Ages {
		if age > 0 {
			d.row(fmt.Sprintf("Age of person %d", i+1), strconv.Itoa(age))
		}
	}
	d.alerts(wb.Alerts)
	d.note(wb.Notes[plan.NoteSummary])
}

func (d *document) cashflow(wb plan.Workbook) {
	s := wb.Summary
	d.heading(sectionTitles[plan.NoteCashflow])
	for i, p := range s.Persons {
		if p.Total == 0 && p.Salary == nil {
			continue
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("Person %d", i+1)
		}
		d.subheading(name)
		primary := "Primary income"
		if p.Locked {
			primary += " (payroll)"
		}
		d.row(primary, format.Currency(p.Primary))
		d.row("Side income", format.Currency(p.Side))
		d.row("Passive income", format.Currency(p.Passive))
		if p.Salary != nil {
			d.row("Gross salary", format.Currency(p.Salary.Gross))
			d.row("Income tax", format.Currency(p.Salary.TaxPaid))
			d.row("Social and health insurance", format.Currency(p.Salary.EmployeeSocial+p.Salary.EmployeeHealth))
			d.row("Employer cost", format.Currency(p.Salary.EmployerCost))
			d.row("Effective tax rate", format.Percent(p.Salary.EffectiveTaxRate))
		}
	}
	d.subheading("Household")
	d.row("Total income", format.Currency(s.Income))
	d.row("Total expenses", format.Currency(s.Expenses))
	d.row("Loan payments", format.Currency(s.LiabilityPayments))
	d.row("Expense ratio", format.Ratio(s.ExpenseRatio))
	d.note(wb.Notes[plan.NoteCashflow])
}

func (d *document) insurance(wb plan.Workbook) {
	c := wb.Insurance
	d.heading(sectionTitles[plan.NoteInsurance])
	d.row("Income the cover is based on", format.Currency(c.Base))
	d.row("Death", format.Millions(c.Death))
	d.row("Critical illness", format.Millions(c.CriticalIllness))
	d.row("Permanent injury", format.Millions(c.PermanentInjury))
	d.row("Disability (3rd degree)", format.Millions(c.DisabilityIII))
	d.row("Sickness benefit per day", format.Currency(c.SickDailyBenefit))
	d.row("Liability", format.Millions(c.Liability))
	if wb.Illness.MonthlyLoss > 0 {
		d.subheading("Long-term illness")
		d.row("Sick pay for the first 14 days", format.Currency(wb.Illness.ShortTermSickPay))
		d.row("Daily sick pay from day 15", format.Currency(wb.Illness.DailySickPay))
		d.row("Monthly income loss", format.Currency(wb.Illness.MonthlyLoss))
		d.row("Recommended daily benefit", format.Currency(wb.Illness.RecommendedDailyBenefit))
	}
	if k := wb.Contracts; k.InsurancePremiums > 0 || k.SavingsBalance > 0 || len(k.Loans) > 0 {
		d.subheading("Existing contracts")
		d.row("Insurance premiums per month", format.Currency(k.InsurancePremiums))
		d.row("Savings balance", format.Currency(k.SavingsBalance))
		d.row("Loan payments per month", format.Currency(k.LoanPayments))
	}
	d.note(wb.Notes[plan.NoteInsurance])
}

func (d *document) goals(wb plan.Workbook) {
	d.heading(sectionTitles[plan.NoteGoals])
	if len(wb.Goals) > 0 {
		widths := []float64{60, 20, 35, 35, 30}
		d.tableHeader(widths, "Goal", "Year", "Today", "Inflated", "Monthly")
		d.pdf.SetFont(fontFamily, "", bodySize)
		for _, g := range wb.Goals {
			year := format.Dash
			if g.TargetYear > 0 {
				year = strconv.Itoa(g.TargetYear)
			}
			cells := []string{g.Name, year, format.Currency(g.Amount), format.Currency(g.InflatedTarget), format.Currency(g.Monthly)}
			for i, cell := range cells {
				align := "R"
				if i == 0 {
					align = "L"
				}
				d.pdf.CellFormat(widths[i], lineHeight, d.text(cell), "B", 0, align, false, 0, "")
			}
			d.pdf.Ln(-1)
		}
		d.row("Goals in total per month", format.Currency(wb.Summary.GoalsMonthly))
	}

	r := wb.Retirement
	d.subheading("Retirement")
	d.row("Years to retirement", strconv.Itoa(r.YearsToRetirement))
	d.row("Expected state pension", format.Currency(wb.RetirementInput.StatePension))
	d.row("Monthly deficit", format.Currency(r.MonthlyDeficit))
	d.row("Required capital", format.Millions(r.RequiredCapital))
	d.row("Monthly saving", format.Currency(r.MonthlyContribution))
	d.row("Pension covers", format.Ratio(r.PensionCoverage))
	d.note(wb.Notes[plan.NoteGoals])
}

func (d *document) conclusion(wb plan.Workbook) {
	d.heading(sectionTitles[plan.NoteConclusion])
	for _, rec := range wb.Recommendations {
		d.pdf.SetFont(fontFamily, "B", bodySize)
		d.pdf.CellFormat(0, lineHeight, d.text(rec.Title), "", 1, "L", false, 0, "")
		d.pdf.SetFont(fontFamily, "", bodySize)
		d.pdf.MultiCell(0, 5, d.text(rec.Text), "", "L", false)
		d.pdf.Ln(2)
	}
	d.note(wb.Notes[plan.NoteConclusion])
}

func (d *document) alerts(alerts []plan.Alert) {
	if len(alerts) == 0 {
		return
	}
	d.pdf.Ln(2)
	d.pdf.SetTextColor(170, 30, 30)
	d.pdf.SetFont(fontFamily, "B", bodySize)
	for _, a := range alerts {
		d.pdf.MultiCell(0, 5, d.text("! "+a.Message), "", "L", false)
	}
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) heading(title string) {
	d.pdf.Ln(4)
	d.pdf.SetFont(fontFamily, "B", headingSize)
	d.pdf.SetFillColor(225, 240, 232)
	d.pdf.CellFormat(0, 9, d.text(title), "", 1, "L", true, 0, "")
	d.pdf.Ln(1)
}

func (d *document) subheading(title string) {
	d.pdf.Ln(2)
	d.pdf.SetFont(fontFamily, "B", bodySize+1)
	d.pdf.CellFormat(0, lineHeight, d.text(title), "", 1, "L", false, 0, "")
}

func (d *document) row(label, value string) {
	d.pdf.SetFont(fontFamily, "", bodySize)
	d.pdf.CellFormat(labelWidth, lineHeight, d.text(label), "B", 0, "L", false, 0, "")
	d.pdf.SetFont(fontFamily, "B", bodySize)
	d.pdf.CellFormat(valueWidth, lineHeight, d.text(value), "B", 1, "R", false, 0, "")
}

func (d *document) tableHeader(widths []float64, titles ...string) {
	d.pdf.SetFont(fontFamily, "B", bodySize)
	d.pdf.SetFillColor(240, 240, 240)
	for i, title := range titles {
		d.pdf.CellFormat(widths[i], lineHeight, d.text(title), "B", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *document) note(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	d.pdf.Ln(2)
	d.pdf.SetFont(fontFamily, "I", bodySize)
	d.pdf.MultiCell(0, 5, d.text(text), "L", "L", false)
}

// plainText folds characters the core PDF fonts cannot show (Czech carons and
// rings) to their base letter before translating to the font encoding.
func plainText(translate func(string) string) func(string) string {
	return func(s string) string {
		folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
		if err != nil {
			folded = s
		}
		return translate(folded)
	}
}
