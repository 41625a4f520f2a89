// Package constants provides shared constants for the lending-forecast tool.
package constants

// Reference basis for revenue scaling: the base revenue figure describes a
// 300-unit loan repaid over 3 months.
const (
	ReferenceLoanSize       = 300.0
	ReferenceLoanTermMonths = 3
)

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 penny)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Input ranges enforced by the interactive surfaces; the engine itself does
// not clamp to these.
const (
	// MinMonthlyGrowthRate is the lowest growth fraction offered (-50%)
	MinMonthlyGrowthRate = -0.5

	// MaxMonthlyGrowthRate is the highest growth fraction offered (100%)
	MaxMonthlyGrowthRate = 1.0

	// MaxForecastHorizonMonths is the longest horizon offered
	MaxForecastHorizonMonths = 60
)

// AllowedLoanTerms is the enumerated set of loan terms in months.
var AllowedLoanTerms = []int{1, 2, 3, 4, 5, 6, 12}

// Warning thresholds surfaced during configuration validation.
const (
	// HighBadDebtRate flags bad-debt fractions worth double-checking
	HighBadDebtRate = 0.5

	// HighCostToRevenueRatio flags cost per funded loan relative to base revenue
	HighCostToRevenueRatio = 0.5
)

// Default scenario parameters, matching the reference assumptions.
const (
	DefaultScenarioName          = "Default Scenario"
	DefaultInitialLendingVolume  = 2_000_000.0
	DefaultMinLoanSize           = 300.0
	DefaultMaxLoanSize           = 1500.0
	DefaultLoanTermMonths        = 3
	DefaultCostPerFundedLoan     = 40.0
	DefaultBadDebtRatePct        = 20.0
	DefaultRecoveryRatePct       = 0.0
	DefaultBaseRevenuePerLoan    = 150.0
	DefaultFixedMonthlyOverhead  = 25_000.0
	DefaultVariableCostPct       = 5.0
	DefaultForecastHorizonMonths = 12
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
