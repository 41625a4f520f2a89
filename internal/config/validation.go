package config

import (
	"fmt"
	"strings"

	"github.com/massimocristi1970/lending-forecast-tool/pkg/constants"
	"github.com/massimocristi1970/lending-forecast-tool/pkg/mathutil"
	"github.com/massimocristi1970/lending-forecast-tool/pkg/validation"
)

// ValidateConfiguration checks every scenario for hard violations and returns
// advisory warnings for assumptions worth double-checking. Hard violations
// abort the run; the loan size range itself is enforced by the engine.
func (c *Configuration) ValidateConfiguration() ([]string, error) {
	var warnings []string
	seen := make(map[string]struct{})

	for _, scenario := range c.Scenarios {
		name := strings.TrimSpace(scenario.Name)
		if name == "" {
			return warnings, fmt.Errorf("every scenario requires a name")
		}
		if _, dup := seen[name]; dup {
			return warnings, fmt.Errorf("duplicate scenario name %q", name)
		}
		seen[name] = struct{}{}

		if scenario.InitialLendingVolume <= 0 {
			return warnings, fmt.Errorf("scenario %q: initial lending volume must be positive, got %.2f",
				name, scenario.InitialLendingVolume)
		}
		if scenario.LoanTermMonths < 1 {
			return warnings, fmt.Errorf("scenario %q: loan term must be at least 1 month, got %d",
				name, scenario.LoanTermMonths)
		}
		if scenario.ForecastHorizonMonths < 1 {
			return warnings, fmt.Errorf("scenario %q: forecast horizon must be at least 1 month, got %d",
				name, scenario.ForecastHorizonMonths)
		}

		warnings = append(warnings, scenarioWarnings(scenario)...)
	}

	return warnings, nil
}

func scenarioWarnings(scenario Scenario) []string {
	var warnings []string
	name := scenario.Name

	if mathutil.FromPercentage(scenario.BadDebtRatePct) > constants.HighBadDebtRate {
		warnings = append(warnings, fmt.Sprintf(
			"Scenario %q has a bad debt rate above 50%% (%.1f%%) - please verify", name, scenario.BadDebtRatePct))
	}
	if scenario.CostPerFundedLoan > scenario.BaseRevenuePerLoan*constants.HighCostToRevenueRatio {
		warnings = append(warnings, fmt.Sprintf(
			"Scenario %q has cost per funded loan above 50%% of base revenue (%.2f vs %.2f) - check unit economics",
			name, scenario.CostPerFundedLoan, scenario.BaseRevenuePerLoan))
	}
	if !validation.GrowthRateInRange(mathutil.FromPercentage(scenario.MonthlyGrowthRatePct)) {
		warnings = append(warnings, fmt.Sprintf(
			"Scenario %q has a growth rate outside the reference range of -50%% to 100%% (%.1f%%)",
			name, scenario.MonthlyGrowthRatePct))
	}
	if !validation.HorizonInRange(scenario.ForecastHorizonMonths) {
		warnings = append(warnings, fmt.Sprintf(
			"Scenario %q has a forecast horizon outside the reference range of 1 to %d months (%d)",
			name, constants.MaxForecastHorizonMonths, scenario.ForecastHorizonMonths))
	}
	if !validation.LoanTermAllowed(scenario.LoanTermMonths) {
		warnings = append(warnings, fmt.Sprintf(
			"Scenario %q has a loan term outside the offered set %v (%d months)",
			name, constants.AllowedLoanTerms, scenario.LoanTermMonths))
	}

	return warnings
}
