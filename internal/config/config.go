// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/massimocristi1970/lending-forecast-tool/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the lending-forecast tool.
type Configuration struct {
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Export    ExportConfig  `yaml:"export,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ExportConfig holds spreadsheet export options. When Path is empty no
// workbook is written.
type ExportConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Scenario holds one named set of lending assumptions as written in the
// config file. Rates are expressed as percentages there, matching how a user
// thinks about them, and are converted to fractions by Parameters.
type Scenario struct {
	Name                  string
	Active                bool
	InitialLendingVolume  float64
	MonthlyGrowthRatePct  float64
	MinLoanSize           float64
	MaxLoanSize           float64
	LoanTermMonths        int
	CostPerFundedLoan     float64
	BadDebtRatePct        float64
	RecoveryRatePct       float64
	BaseRevenuePerLoan    float64
	FixedMonthlyOverhead  float64
	VariableCostPct       float64
	ForecastHorizonMonths int
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()

	return &configuration, nil
}

// ApplyDefaults fills in a default scenario when the config names none, so
// the tool produces a forecast out of the box.
func (c *Configuration) ApplyDefaults() {
	if len(c.Scenarios) == 0 {
		c.Scenarios = []Scenario{DefaultScenario()}
	}
}

// DefaultScenario returns the reference assumptions.
func DefaultScenario() Scenario {
	return Scenario{
		Name:                  constants.DefaultScenarioName,
		Active:                true,
		InitialLendingVolume:  constants.DefaultInitialLendingVolume,
		MinLoanSize:           constants.DefaultMinLoanSize,
		MaxLoanSize:           constants.DefaultMaxLoanSize,
		LoanTermMonths:        constants.DefaultLoanTermMonths,
		CostPerFundedLoan:     constants.DefaultCostPerFundedLoan,
		BadDebtRatePct:        constants.DefaultBadDebtRatePct,
		RecoveryRatePct:       constants.DefaultRecoveryRatePct,
		BaseRevenuePerLoan:    constants.DefaultBaseRevenuePerLoan,
		FixedMonthlyOverhead:  constants.DefaultFixedMonthlyOverhead,
		VariableCostPct:       constants.DefaultVariableCostPct,
		ForecastHorizonMonths: constants.DefaultForecastHorizonMonths,
	}
}
