// Package scenario provides the in-memory store of named forecast snapshots
// used for side-by-side comparison. Snapshots live for the process lifetime
// only; nothing is persisted across restarts.
package scenario

import (
	"strings"
	"sync"

	"github.com/massimocristi1970/lending-forecast-tool/internal/forecast"
	"go.uber.org/zap"
)

// ComparisonRow holds one scenario's aggregate figures for the comparison
// table, plus its raw cashflow series for charting.
type ComparisonRow struct {
	Name                 string                  `json:"name"`
	TotalRevenue         float64                 `json:"totalRevenue"`
	TotalLoans           int                     `json:"totalLoans"`
	TotalNetContribution float64                 `json:"totalNetContribution"`
	AvgRevenuePerLoan    float64                 `json:"avgRevenuePerLoan"`
	Cashflow             forecast.CashflowSeries `json:"cashflow"`
}

// Store retains forecast snapshots under user-chosen names. The zero value is
// not usable; construct with NewStore. The store owns its snapshots
// exclusively: Save copies the result in, and readers receive copies of the
// mutable slices.
type Store struct {
	mu     sync.Mutex
	logger *zap.Logger
	byName map[string]forecast.Result
	order  []string
}

// NewStore creates an empty scenario store with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger: logger,
		byName: make(map[string]forecast.Result),
	}
}

// Save stores a snapshot under name, overwriting any existing entry with the
// same name. It fails with EmptyNameError when the name is blank.
func (s *Store) Save(name string, result forecast.Result) error {
	if strings.TrimSpace(name) == "" {
		return &EmptyNameError{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[name]; !exists {
		s.order = append(s.order, name)
	}
	s.byName[name] = snapshotCopy(result)

	s.logger.Debug("scenario saved",
		zap.String("op", "scenario.Save"),
		zap.String("name", name),
		zap.Int("saved", len(s.byName)),
	)
	return nil
}

// Names returns the saved scenario names in first-save order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Len returns the number of saved scenarios.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byName)
}

// Clear removes every saved scenario. This is irreversible.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byName = make(map[string]forecast.Result)
	s.order = nil

	s.logger.Debug("scenario store cleared",
		zap.String("op", "scenario.Clear"),
	)
}

// Compare returns one aggregate row per requested scenario, in the order the
// names were given. It fails with InsufficientSelectionError when fewer than
// two names are requested and with UnknownScenarioError when a name has not
// been saved; no partial comparison is returned.
func (s *Store) Compare(names []string) ([]ComparisonRow, error) {
	if len(names) < 2 {
		return nil, &InsufficientSelectionError{Selected: len(names)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]ComparisonRow, 0, len(names))
	for _, name := range names {
		result, ok := s.byName[name]
		if !ok {
			return nil, &UnknownScenarioError{Name: name}
		}

		avgRevenuePerLoan := 0.0
		if result.Totals.LoansFunded > 0 {
			avgRevenuePerLoan = result.Totals.Revenue / float64(result.Totals.LoansFunded)
		}

		rows = append(rows, ComparisonRow{
			Name:                 name,
			TotalRevenue:         result.Totals.Revenue,
			TotalLoans:           result.Totals.LoansFunded,
			TotalNetContribution: result.Totals.NetContribution,
			AvgRevenuePerLoan:    avgRevenuePerLoan,
			Cashflow: forecast.CashflowSeries{
				Repayments: append([]float64(nil), result.Cashflow.Repayments...),
				Net:        append([]float64(nil), result.Cashflow.Net...),
			},
		})
	}

	return rows, nil
}

// snapshotCopy deep-copies the slice-valued fields so later callers cannot
// mutate a stored snapshot through a retained Result.
func snapshotCopy(result forecast.Result) forecast.Result {
	result.Records = append([]forecast.MonthlyRecord(nil), result.Records...)
	result.Cashflow.Repayments = append([]float64(nil), result.Cashflow.Repayments...)
	result.Cashflow.Net = append([]float64(nil), result.Cashflow.Net...)
	return result
}
