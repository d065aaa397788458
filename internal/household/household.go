// Package household defines the advisor's household record and its JSON
// document form.
package household

import (
	"github.com/iwvelando/finance-workbook/internal/payroll"
	"github.com/iwvelando/finance-workbook/pkg/numeric"
)

// DefaultNoteKind labels the note every new household starts with.
const DefaultNoteKind = "Initial analysis"

// DefaultGoalSlots is the number of blank goals a new household starts with.
const DefaultGoalSlots = 5

// Person is one of the two adults of the household.
type Person struct {
	LastName      string         `json:"lastName"`
	FirstName     string         `json:"firstName"`
	Title         string         `json:"title"`
	BirthYear     numeric.Amount `json:"birthYear"`
	NationalID    string         `json:"nationalId"`
	IDCard        string         `json:"idCard"`
	Citizenship   string         `json:"citizenship"`
	MaritalStatus string         `json:"maritalStatus"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	BankAccount   string         `json:"bankAccount"`
	Address       string         `json:"address"`
	Occupation    string         `json:"occupation"`
	MinorInjuries string         `json:"minorInjuries"`
	Sports        string         `json:"sports"`

	// Monthly net income by category. PrimaryIncome is the manually entered
	// figure; it is superseded by the payroll calculator when that is enabled.
	PrimaryIncome numeric.Amount `json:"primaryIncome"`
	SideIncome    numeric.Amount `json:"sideIncome"`
	PassiveIncome numeric.Amount `json:"passiveIncome"`
}

// FullName joins first and last name, skipping empty parts.
func (p Person) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Child is a dependent child living in the household.
type Child struct {
	LastName      string         `json:"lastName"`
	FirstName     string         `json:"firstName"`
	BirthYear     numeric.Amount `json:"birthYear"`
	MinorInjuries string         `json:"minorInjuries"`
	Sports        string         `json:"sports"`
}

// Expenses are the six fixed monthly expense categories.
type Expenses struct {
	Housing  numeric.Amount `json:"housing"`
	Car      numeric.Amount `json:"car"`
	Savings  numeric.Amount `json:"savings"`
	Children numeric.Amount `json:"children"`
	Debts    numeric.Amount `json:"debts"`
	Other    numeric.Amount `json:"other"`
}

// Total sums all expense categories.
func (e Expenses) Total() float64 {
	return (e.Housing + e.Car + e.Savings + e.Children + e.Debts + e.Other).Float()
}

// Liability is one outstanding debt.
type Liability struct {
	Description      string         `json:"description"`
	MonthlyPayment   numeric.Amount `json:"monthlyPayment"`
	RemainingBalance numeric.Amount `json:"remainingBalance"`
	InterestRate     numeric.Amount `json:"interestRate"`
}

// Liabilities are the six fixed debt categories.
type Liabilities struct {
	Mortgage     Liability `json:"mortgage"`
	ConsumerLoan Liability `json:"consumerLoan"`
	CreditCard   Liability `json:"creditCard"`
	Overdraft    Liability `json:"overdraft"`
	Alimony      Liability `json:"alimony"`
	Leasing      Liability `json:"leasing"`
}

// All returns the categories in display order.
func (l Liabilities) All() []Liability {
	return []Liability{l.Mortgage, l.ConsumerLoan, l.CreditCard, l.Overdraft, l.Alimony, l.Leasing}
}

// TotalRemaining sums the remaining balances.
func (l Liabilities) TotalRemaining() float64 {
	total := 0.0
	for _, item := range l.All() {
		total += item.RemainingBalance.Float()
	}
	return total
}

// TotalPayments sums the monthly payments.
func (l Liabilities) TotalPayments() float64 {
	total := 0.0
	for _, item := range l.All() {
		total += item.MonthlyPayment.Float()
	}
	return total
}

// Asset is one valued possession.
type Asset struct {
	Description  string         `json:"description"`
	Value        numeric.Amount `json:"value"`
	YearAcquired numeric.Amount `json:"yearAcquired"`
}

// Assets are the six fixed asset categories.
type Assets struct {
	Car            Asset `json:"car"`
	SecondCar      Asset `json:"secondCar"`
	Property       Asset `json:"property"`
	RentalProperty Asset `json:"rentalProperty"`
	Reserve        Asset `json:"reserve"`
	Investments    Asset `json:"investments"`
}

// All returns the categories in display order.
func (a Assets) All() []Asset {
	return []Asset{a.Car, a.SecondCar, a.Property, a.RentalProperty, a.Reserve, a.Investments}
}

// TotalValue sums the asset valuations.
func (a Assets) TotalValue() float64 {
	total := 0.0
	for _, item := range a.All() {
		total += item.Value.Float()
	}
	return total
}

// Goal is a savings target expressed in today's money.
type Goal struct {
	Name       string         `json:"name"`
	TargetYear numeric.Amount `json:"targetYear"`
	Amount     numeric.Amount `json:"amount"`
	Note       string         `json:"note"`
}

// Empty reports whether the goal slot is unused.
func (g Goal) Empty() bool {
	return g.Name == "" && g.Amount == 0 && g.TargetYear == 0
}

// Note is a dated meeting record.
type Note struct {
	Date string `json:"date"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// SavingsContract is an existing savings or investment product.
type SavingsContract struct {
	Product        string         `json:"product"`
	Institution    string         `json:"institution"`
	Number         string         `json:"number"`
	Start          string         `json:"start"`
	MonthlyDeposit numeric.Amount `json:"monthlyDeposit"`
	OneOffDeposit  numeric.Amount `json:"oneOffDeposit"`
	Balance        numeric.Amount `json:"balance"`
}

// InsuranceContract is an existing insurance policy.
type InsuranceContract struct {
	Product    string         `json:"product"`
	Insurer    string         `json:"insurer"`
	Number     string         `json:"number"`
	Start      string         `json:"start"`
	End        string         `json:"end"`
	Premium    numeric.Amount `json:"premium"`
	SumInsured numeric.Amount `json:"sumInsured"`
}

// LoanContract is an existing credit agreement.
type LoanContract struct {
	Kind           string         `json:"kind"`
	Institution    string         `json:"institution"`
	Number         string         `json:"number"`
	MonthlyPayment numeric.Amount `json:"monthlyPayment"`
	Remaining      numeric.Amount `json:"remaining"`
	InterestRate   numeric.Amount `json:"interestRate"`
	End            string         `json:"end"`
}

// Contracts lists the household's existing financial products.
type Contracts struct {
	Savings   []SavingsContract   `json:"savings"`
	Insurance []InsuranceContract `json:"insurance"`
	Loans     []LoanContract      `json:"loans"`
}

// SavingsBalance sums the current balances of savings contracts.
func (c Contracts) SavingsBalance() float64 {
	total := 0.0
	for _, s := range c.Savings {
		total += s.Balance.Float()
	}
	return total
}

// InsurancePremiums sums the monthly premiums of insurance contracts.
func (c Contracts) InsurancePremiums() float64 {
	total := 0.0
	for _, p := range c.Insurance {
		total += p.Premium.Float()
	}
	return total
}

// LoanPayments sums the monthly payments of loan contracts.
func (c Contracts) LoanPayments() float64 {
	total := 0.0
	for _, l := range c.Loans {
		total += l.MonthlyPayment.Float()
	}
	return total
}

// PayrollConfig is one person's payroll calculator settings.
type PayrollConfig struct {
	GrossMonthly numeric.Amount `json:"grossMonthly"`
	Children     numeric.Amount `json:"children"`
	Disability   bool           `json:"disability"`
	Student      bool           `json:"student"`
	Enabled      bool           `json:"enabled"`
}

// Input converts the settings into a payroll engine input.
func (c PayrollConfig) Input() payroll.Input {
	return payroll.Input{
		GrossMonthly: c.GrossMonthly.Float(),
		Children:     c.Children.Int(),
		Disability:   c.Disability,
		Student:      c.Student,
		Enabled:      c.Enabled,
	}
}

// Household is the full record an advisor keeps for one client.
type Household struct {
	Persons     [2]Person         `json:"persons"`
	Children    []Child           `json:"children"`
	Expenses    Expenses          `json:"expenses"`
	Liabilities Liabilities       `json:"liabilities"`
	Assets      Assets            `json:"assets"`
	Goals       []Goal            `json:"goals"`
	Notes       []Note            `json:"notes"`
	Contracts   Contracts         `json:"contracts"`
	Payroll     [2]PayrollConfig  `json:"payroll"`
	PlanNotes   map[string]string `json:"planNotes"`
}

// New returns an empty household with the defaults of a fresh client: blank
// goal slots, one initial note and the payroll calculator enabled for the
// first person only.
func New() *Household {
	h := &Household{
		Children:  make([]Child, 3),
		Goals:     make([]Goal, DefaultGoalSlots),
		Notes:     []Note{{Kind: DefaultNoteKind}},
		PlanNotes: make(map[string]string),
	}
	for i := range h.Persons {
		h.Persons[i].Citizenship = "CZ"
		h.Persons[i].MinorInjuries = "no"
	}
	h.Payroll[0].Enabled = true
	return h
}

// Name returns a display name for the household.
func (h *Household) Name() string {
	if name := h.Persons[0].FullName(); name != "" {
		return name
	}
	return "New client"
}

// Normalize replaces nil collections with empty ones so that encoded documents
// always carry every top-level key.
func (h *Household) Normalize() {
	if h.Children == nil {
		h.Children = []Child{}
	}
	if h.Goals == nil {
		h.Goals = []Goal{}
	}
	if h.Notes == nil {
		h.Notes = []Note{}
	}
	if h.Contracts.Savings == nil {
		h.Contracts.Savings = []SavingsContract{}
	}
	if h.Contracts.Insurance == nil {
		h.Contracts.Insurance = []InsuranceContract{}
	}
	if h.Contracts.Loans == nil {
		h.Contracts.Loans = []LoanContract{}
	}
	if h.PlanNotes == nil {
		h.PlanNotes = make(map[string]string)
	}
}
