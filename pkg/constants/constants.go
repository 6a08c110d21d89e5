// Package constants provides shared constants for the bizcalc application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Gratuity constants as per the Payment of Gratuity Act.
const (
	// GratuityDaysPerYear is the number of days of salary earned per year of service
	GratuityDaysPerYear = 15.0

	// GratuityWorkingDaysPerMonth is the number of working days assumed in a month
	GratuityWorkingDaysPerMonth = 26.0

	// MaximumGratuity is the statutory ceiling on gratuity payouts
	MaximumGratuity = 2000000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "BIZCALC"
)

// Default calculator inputs, used when a caller supplies none.
const (
	DefaultLoanAmount      = 1000000.0
	DefaultLoanRate        = 8.5
	DefaultLoanYears       = 20.0
	DefaultRevenue         = 1000000.0
	DefaultProfitMargin    = 15.0
	DefaultGrowthRate      = 10.0
	DefaultDiscountRate    = 12.0
	DefaultInitialInvest   = 100000.0
	DefaultFinalValue      = 150000.0
	DefaultInvestYears     = 5.0
	DefaultFixedCosts      = 50000.0
	DefaultVariableCosts   = 100.0
	DefaultSellingPrice    = 200.0
	DefaultBasicSalary     = 50000.0
	DefaultDearnessAllow   = 10000.0
	DefaultYearsOfService  = 5.0
	DefaultChartInterval   = 6
	DefaultNumberPrecision = 2
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa)
	CurrencyTolerance = 0.01

	// TermTolerance is the tolerance used when checking that a loan term is a
	// whole number of months
	TermTolerance = 1e-9

	// MaxTermMonths is the longest loan term accepted, one hundred years
	MaxTermMonths = 1200

	// MaxFractionDigits is the largest fraction digit count accepted by the
	// number formatter
	MaxFractionDigits = 20
)
