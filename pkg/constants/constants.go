// Package constants provides shared constants for the fincalc application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultProjectionYears is how many yearly investment projections are
	// reported alongside an investment result.
	DefaultProjectionYears = 10

	// MaxTermYears bounds loan and investment horizons.
	MaxTermYears = 100
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// RelativeTolerance is the tolerance used for identity checks between
	// derived result fields.
	RelativeTolerance = 1e-6
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

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "FINCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// Calculator defaults, matching the initial values of the calculator forms.
const (
	DefaultMortgagePrincipal   = 300000.0
	DefaultMortgageRate        = 4.5
	DefaultMortgageTermYears   = 30
	DefaultMortgagePropertyTax = 3600.0
	DefaultMortgageInsurance   = 1200.0

	DefaultLoanPrincipal = 25000.0
	DefaultLoanRate      = 7.5
	DefaultLoanTermYears = 5

	DefaultInvestmentPrincipal    = 10000.0
	DefaultInvestmentContribution = 500.0
	DefaultInvestmentRate         = 8.0
	DefaultInvestmentYears        = 20

	DefaultSavingsTarget       = 50000.0
	DefaultSavingsCurrent      = 10000.0
	DefaultSavingsContribution = 500.0
	DefaultSavingsRate         = 4.0
)
