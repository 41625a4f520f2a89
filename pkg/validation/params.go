package validation

import "github.com/massimocristi1970/lending-forecast-tool/pkg/constants"

// LoanTermAllowed reports whether the term is one of the enumerated loan
// terms offered by the interactive surfaces.
func LoanTermAllowed(termMonths int) bool {
	for _, term := range constants.AllowedLoanTerms {
		if termMonths == term {
			return true
		}
	}
	return false
}

// GrowthRateInRange reports whether a growth fraction lies within the range
// offered by the interactive surfaces.
func GrowthRateInRange(rate float64) bool {
	return rate >= constants.MinMonthlyGrowthRate && rate <= constants.MaxMonthlyGrowthRate
}

// HorizonInRange reports whether the forecast horizon lies within the
// reference range.
func HorizonInRange(months int) bool {
	return months >= 1 && months <= constants.MaxForecastHorizonMonths
}
