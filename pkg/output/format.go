// Package output provides utilities for formatting and displaying workbook results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-workbook/internal/plan"
	"github.com/iwvelando/finance-workbook/pkg/constants"
	"github.com/iwvelando/finance-workbook/pkg/format"
	"github.com/iwvelando/finance-workbook/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable plan.
func PrettyFormat(w io.Writer, wb plan.Workbook) {
	p := message.NewPrinter(language.English)
	row := func(label, value string) {
		_, _ = p.Fprintf(w, "%-34s | %s\n", label, value)
	}
	section := func(title string) {
		_, _ = p.Fprintf(w, "\n--- %s ---\n", title)
	}

	_, _ = p.Fprintf(w, "=== Financial plan for %s (%s, rates %s) ===\n",
		wb.Client, wb.Date.Format(constants.DateLayout), strconv.Itoa(wb.RateYear))

	s := wb.Summary
	section("Household overview")
	row("Monthly income", format.Currency(s.Income))
	row("Monthly expenses", format.Currency(s.Expenses))
	row("Cashflow", format.Currency(s.Cashflow))
	row("Savings rate", format.Ratio(s.SavingsRate))
	row("Expense ratio", format.Ratio(s.ExpenseRatio))
	row("Assets", format.Currency(s.Assets))
	row("Liabilities", format.Currency(s.Liabilities))
	row("Net worth", format.Currency(s.NetWorth))
	row("Debt to annual income", format.Multiple(s.DebtToIncome))

	section("Income")
	_, _ = p.Fprintf(w, "%-20s | %14s | %14s | %14s | %14s\n", "Person", "Primary", "Side", "Passive", "Total")
	_, _ = p.Fprintf(w, "%s\n", strings.Repeat("_", 20+4*17))
	for i, person := range s.Persons {
		name := person.Name
		if name == "" {
			name = "Person " + strconv.Itoa(i+1)
		}
		primary := format.Currency(person.Primary)
		if person.Locked {
			primary += "*"
		}
		_, _ = p.Fprintf(w, "%-20s | %14s | %14s | %14s | %14s\n", name, primary,
			format.Currency(person.Side), format.Currency(person.Passive), format.Currency(person.Total))
	}
	for i, salary := range wb.Salaries {
		if salary == nil {
			continue
		}
		_, _ = p.Fprintf(w, "* person %s: gross %s, tax %s, employer cost %s, effective rate %s\n",
			strconv.Itoa(i+1), format.Currency(salary.Gross), format.Currency(salary.TaxPaid),
			format.Currency(salary.EmployerCost), format.Percent(salary.EffectiveTaxRate))
	}

	if len(wb.Goals) > 0 {
		section("Goals")
		_, _ = p.Fprintf(w, "%-24s | %6s | %14s | %14s | %12s\n", "Goal", "Year", "Today", "Inflated", "Monthly")
		for _, g := range wb.Goals {
			_, _ = p.Fprintf(w, "%-24s | %6s | %14s | %14s | %12s\n", g.Name, strconv.Itoa(g.TargetYear),
				format.Currency(g.Amount), format.Currency(g.InflatedTarget), format.Currency(g.Monthly))
		}
		row("Goals in total per month", format.Currency(s.GoalsMonthly))
	}

	c := wb.Insurance
	section("Insurance")
	row("Death", format.Millions(c.Death))
	row("Critical illness", format.Millions(c.CriticalIllness))
	row("Permanent injury", format.Millions(c.PermanentInjury))
	row("Disability (3rd degree)", format.Millions(c.DisabilityIII))
	row("Sickness benefit per day", format.Currency(c.SickDailyBenefit))
	row("Liability", format.Millions(c.Liability))
	row("Income loss in long-term illness", format.Currency(wb.Illness.MonthlyLoss))

	if k := wb.Contracts; k.SavingsBalance != 0 || k.InsurancePremiums != 0 || len(k.Loans) > 0 {
		section("Existing contracts")
		row("Savings balance", format.Currency(k.SavingsBalance))
		row("Insurance premiums per month", format.Currency(k.InsurancePremiums))
		row("Loan payments per month", format.Currency(k.LoanPayments))
		for _, l := range k.Loans {
			_, _ = p.Fprintf(w, "* %s (%s): %s left, %s months\n", l.Kind, l.Institution,
				format.Currency(l.Remaining), strconv.Itoa(l.MonthsLeft))
		}
	}

	r := wb.Retirement
	section("Retirement")
	row("Years to retirement", strconv.Itoa(r.YearsToRetirement))
	row("Monthly deficit", format.Currency(r.MonthlyDeficit))
	row("Required capital", format.Millions(r.RequiredCapital))
	row("Monthly saving", format.Currency(r.MonthlyContribution))

	if len(wb.Alerts) > 0 {
		section("Alerts")
		for _, a := range wb.Alerts {
			_, _ = p.Fprintf(w, "[%s] %s\n", a.Severity, a.Message)
		}
	}

	section("Recommendations")
	for _, rec := range wb.Recommendations {
		_, _ = p.Fprintf(w, "- %s: %s\n", rec.Title, rec.Text)
	}

	for _, key := range plan.NoteSections {
		if note := strings.TrimSpace(wb.Notes[key]); note != "" {
			_, _ = p.Fprintf(w, "\nNote (%s): %s\n", key, note)
		}
	}
}

// CsvFormat writes the plan as "section","item","value" rows. Amounts are
// plain numbers with two decimals and undefined values are empty.
func CsvFormat(w io.Writer, wb plan.Workbook) error {
	cw := csv.NewWriter(w)
	write := func(section, item, value string) {
		_ = cw.Write([]string{section, item, value})
	}
	amount := func(v float64) string {
		if !mathutil.Finite(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	ratio := func(r mathutil.Ratio) string {
		if !r.Defined {
			return ""
		}
		return strconv.FormatFloat(r.Value, 'f', 4, 64)
	}

	write("section", "item", "value")
	s := wb.Summary
	write("summary", "income", amount(s.Income))
	write("summary", "expenses", amount(s.Expenses))
	write("summary", "cashflow", amount(s.Cashflow))
	write("summary", "savingsRate", ratio(s.SavingsRate))
	write("summary", "expenseRatio", ratio(s.ExpenseRatio))
	write("summary", "assets", amount(s.Assets))
	write("summary", "liabilities", amount(s.Liabilities))
	write("summary", "liabilityPayments", amount(s.LiabilityPayments))
	write("summary", "netWorth", amount(s.NetWorth))
	write("summary", "debtToIncome", ratio(s.DebtToIncome))
	write("summary", "goalsMonthly", amount(s.GoalsMonthly))

	for i, person := range s.Persons {
		section := fmt.Sprintf("person%d", i+1)
		write(section, "name", person.Name)
		write(section, "primary", amount(person.Primary))
		write(section, "side", amount(person.Side))
		write(section, "passive", amount(person.Passive))
		write(section, "total", amount(person.Total))
		if salary := wb.Salaries[i]; salary != nil {
			write(section, "gross", amount(salary.Gross))
			write(section, "net", amount(salary.Net))
			write(section, "tax", amount(salary.TaxPaid))
			write(section, "employerCost", amount(salary.EmployerCost))
		}
	}

	for _, g := range wb.Goals {
		write("goal", g.Name, amount(g.Monthly))
	}

	c := wb.Insurance
	write("insurance", "death", amount(c.Death))
	write("insurance", "criticalIllness", amount(c.CriticalIllness))
	write("insurance", "permanentInjury", amount(c.PermanentInjury))
	write("insurance", "disabilityIII", amount(c.DisabilityIII))
	write("insurance", "sickDailyBenefit", amount(c.SickDailyBenefit))
	write("insurance", "liability", amount(c.Liability))
	write("insurance", "illnessMonthlyLoss", amount(wb.Illness.MonthlyLoss))

	k := wb.Contracts
	write("contracts", "savingsBalance", amount(k.SavingsBalance))
	write("contracts", "insurancePremiums", amount(k.InsurancePremiums))
	write("contracts", "loanPayments", amount(k.LoanPayments))

	r := wb.Retirement
	write("retirement", "yearsToRetirement", strconv.Itoa(r.YearsToRetirement))
	write("retirement", "monthlyDeficit", amount(r.MonthlyDeficit))
	write("retirement", "requiredCapital", amount(r.RequiredCapital))
	write("retirement", "monthlyContribution", amount(r.MonthlyContribution))

	for _, a := range wb.Alerts {
		write("alert", a.Code, a.Message)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
