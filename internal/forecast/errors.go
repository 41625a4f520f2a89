package forecast

import "fmt"

// InvalidRangeError reports a loan size range whose maximum does not exceed
// its minimum. No forecast can be produced from such a parameter set.
type InvalidRangeError struct {
	MinLoanSize float64
	MaxLoanSize float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("maximum loan size %.2f must exceed minimum loan size %.2f",
		e.MaxLoanSize, e.MinLoanSize)
}

// InvalidTermError reports a non-positive loan term. Terms come from an
// enumerated set of positive values, so this only fires on malformed input.
type InvalidTermError struct {
	TermMonths int
}

func (e *InvalidTermError) Error() string {
	return fmt.Sprintf("loan term must be a positive number of months, got %d", e.TermMonths)
}
