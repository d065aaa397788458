// Package constants provides shared constants for the finance-workbook application.
package constants

// DateLayout is the format used for contract and note dates in household
// documents.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultInflationRate is the annual inflation assumed when inflating goal
	// targets into future money.
	DefaultInflationRate = 0.02

	// WorkingDaysPerMonth is the number of paid working days used when
	// converting a daily sick-pay rate into a monthly figure.
	WorkingDaysPerMonth = 22

	// CurrencyTolerance is the tolerance for currency comparisons (one unit)
	CurrencyTolerance = 1.0
)

// Household alert thresholds
const (
	// LowSavingsRate is the savings rate below which the household is warned.
	LowSavingsRate = 0.10

	// MaxDebtToIncome is the debt-to-income ratio above which the household
	// is warned.
	MaxDebtToIncome = 5.0

	// IllnessLossExpenseShare is the share of household expenses that the
	// monthly income loss during long-term illness may reach before an alert.
	IllnessLossExpenseShare = 0.30

	// InvestmentShareOfCashflow is the share of free cashflow recommended for
	// regular investing.
	InvestmentShareOfCashflow = 0.40
)

// Retirement defaults used when the household does not provide a value.
const (
	DefaultAge                = 40
	DefaultRetirementAge      = 67
	DefaultRetirementSpending = 35000.0
	DefaultStatePension       = 15000.0
	DefaultRetirementReturn   = 6.0
	DefaultPayoutYears        = 25
	DefaultYearsWorked        = 35
)

// MaxProjectionYears caps every year-by-year series a scenario produces.
const MaxProjectionYears = 100

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatPDF renders the plan document as a PDF file
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultStoreDir is the directory holding saved client documents
	DefaultStoreDir = "clients"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
