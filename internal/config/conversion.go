package config

import (
	"github.com/massimocristi1970/lending-forecast-tool/internal/forecast"
	"github.com/massimocristi1970/lending-forecast-tool/pkg/mathutil"
)

// Parameters converts a config Scenario to engine Parameters, normalizing
// every percentage field to a fraction. This is the input boundary: past this
// point rates are fractions and are not converted again.
func (s *Scenario) Parameters() forecast.Parameters {
	return forecast.Parameters{
		Name:                  s.Name,
		InitialLendingVolume:  s.InitialLendingVolume,
		MonthlyGrowthRate:     mathutil.FromPercentage(s.MonthlyGrowthRatePct),
		MinLoanSize:           s.MinLoanSize,
		MaxLoanSize:           s.MaxLoanSize,
		LoanTermMonths:        s.LoanTermMonths,
		CostPerFundedLoan:     s.CostPerFundedLoan,
		BadDebtRate:           mathutil.FromPercentage(s.BadDebtRatePct),
		RecoveryRate:          mathutil.FromPercentage(s.RecoveryRatePct),
		BaseRevenuePerLoan:    s.BaseRevenuePerLoan,
		FixedMonthlyOverhead:  s.FixedMonthlyOverhead,
		VariableCostFraction:  mathutil.FromPercentage(s.VariableCostPct),
		ForecastHorizonMonths: s.ForecastHorizonMonths,
	}
}
