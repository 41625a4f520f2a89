package scenario

import (
	"errors"
	"reflect"
	"testing"

	"github.com/massimocristi1970/lending-forecast-tool/internal/forecast"
	"go.uber.org/zap"
)

func buildResult(t *testing.T, name string, initialVolume float64) *forecast.Result {
	t.Helper()

	engine := forecast.NewEngine(zap.NewNop())
	result, err := engine.BuildForecast(forecast.Parameters{
		Name:                  name,
		InitialLendingVolume:  initialVolume,
		MinLoanSize:           300,
		MaxLoanSize:           1500,
		LoanTermMonths:        3,
		CostPerFundedLoan:     40,
		BadDebtRate:           0.20,
		BaseRevenuePerLoan:    150,
		FixedMonthlyOverhead:  25_000,
		VariableCostFraction:  0.05,
		ForecastHorizonMonths: 6,
	})
	if err != nil {
		t.Fatalf("BuildForecast() error = %v", err)
	}
	return result
}

func TestSaveRejectsEmptyName(t *testing.T) {
	store := NewStore(zap.NewNop())
	result := buildResult(t, "Base", 1_000_000)

	tests := []struct {
		name         string
		scenarioName string
	}{
		{name: "Empty", scenarioName: ""},
		{name: "Whitespace only", scenarioName: "   \t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Save(tt.scenarioName, *result)
			var emptyName *EmptyNameError
			if !errors.As(err, &emptyName) {
				t.Fatalf("Save(%q) error = %v, expected EmptyNameError", tt.scenarioName, err)
			}
		})
	}

	if store.Len() != 0 {
		t.Errorf("store retained %d scenarios after rejected saves", store.Len())
	}
}

func TestSaveOverwritesSameName(t *testing.T) {
	store := NewStore(zap.NewNop())

	first := buildResult(t, "Base", 1_000_000)
	second := buildResult(t, "Base", 2_000_000)

	if err := store.Save("Base", *first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save("Base", *second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("store holds %d scenarios, expected 1 after overwrite", store.Len())
	}

	other := buildResult(t, "Other", 1_000_000)
	if err := store.Save("Other", *other); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rows, err := store.Compare([]string{"Base", "Other"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if rows[0].TotalLoans != second.Totals.LoansFunded {
		t.Errorf("overwritten scenario reports %d loans, expected %d from the latest save",
			rows[0].TotalLoans, second.Totals.LoansFunded)
	}
}

func TestNamesPreserveFirstSaveOrder(t *testing.T) {
	store := NewStore(zap.NewNop())

	for _, name := range []string{"Charlie", "Alpha", "Bravo"} {
		if err := store.Save(name, *buildResult(t, name, 1_000_000)); err != nil {
			t.Fatalf("Save(%q) error = %v", name, err)
		}
	}
	// Re-saving must not move a scenario to the end.
	if err := store.Save("Charlie", *buildResult(t, "Charlie", 3_000_000)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	expected := []string{"Charlie", "Alpha", "Bravo"}
	if got := store.Names(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Names() = %v, expected %v", got, expected)
	}
}

func TestCompareAggregates(t *testing.T) {
	store := NewStore(zap.NewNop())

	base := buildResult(t, "Base", 1_000_000)
	aggressive := buildResult(t, "Aggressive", 2_000_000)

	if err := store.Save("Base", *base); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save("Aggressive", *aggressive); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rows, err := store.Compare([]string{"Base", "Aggressive"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Compare() returned %d rows, expected 2", len(rows))
	}

	perMonthLoans := 0
	for _, record := range base.Records {
		perMonthLoans += record.LoansFunded
	}
	if rows[0].TotalLoans != perMonthLoans {
		t.Errorf("TotalLoans = %d, expected sum of per-month loans %d", rows[0].TotalLoans, perMonthLoans)
	}
	if rows[0].TotalRevenue != base.Totals.Revenue {
		t.Errorf("TotalRevenue = %.2f, expected %.2f", rows[0].TotalRevenue, base.Totals.Revenue)
	}

	expectedAvg := base.Totals.Revenue / float64(base.Totals.LoansFunded)
	if rows[0].AvgRevenuePerLoan != expectedAvg {
		t.Errorf("AvgRevenuePerLoan = %.2f, expected %.2f", rows[0].AvgRevenuePerLoan, expectedAvg)
	}

	if len(rows[1].Cashflow.Repayments) != len(aggressive.Cashflow.Repayments) {
		t.Errorf("comparison cashflow length = %d, expected %d",
			len(rows[1].Cashflow.Repayments), len(aggressive.Cashflow.Repayments))
	}
}

func TestCompareZeroLoansGuard(t *testing.T) {
	store := NewStore(zap.NewNop())

	// Volume below the average loan size funds zero loans every month.
	tiny := buildResult(t, "Tiny", 500)
	other := buildResult(t, "Other", 1_000_000)

	if err := store.Save("Tiny", *tiny); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save("Other", *other); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rows, err := store.Compare([]string{"Tiny", "Other"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if rows[0].TotalLoans != 0 {
		t.Fatalf("TotalLoans = %d, expected 0", rows[0].TotalLoans)
	}
	if rows[0].AvgRevenuePerLoan != 0 {
		t.Errorf("AvgRevenuePerLoan = %.2f, expected 0 when no loans are funded", rows[0].AvgRevenuePerLoan)
	}
}

func TestCompareMisuse(t *testing.T) {
	store := NewStore(zap.NewNop())

	if err := store.Save("Base", *buildResult(t, "Base", 1_000_000)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, err := store.Compare([]string{"Base"})
	var insufficient *InsufficientSelectionError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Compare() with one name error = %v, expected InsufficientSelectionError", err)
	}

	_, err = store.Compare([]string{"Base", "Missing"})
	var unknown *UnknownScenarioError
	if !errors.As(err, &unknown) {
		t.Fatalf("Compare() with unsaved name error = %v, expected UnknownScenarioError", err)
	}
	if unknown.Name != "Missing" {
		t.Errorf("UnknownScenarioError.Name = %q, expected %q", unknown.Name, "Missing")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	store := NewStore(zap.NewNop())

	if err := store.Save("Base", *buildResult(t, "Base", 1_000_000)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save("Other", *buildResult(t, "Other", 2_000_000)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	store.Clear()

	if store.Len() != 0 {
		t.Errorf("store holds %d scenarios after Clear, expected 0", store.Len())
	}
	if names := store.Names(); len(names) != 0 {
		t.Errorf("Names() = %v after Clear, expected none", names)
	}

	if _, err := store.Compare([]string{"Base", "Other"}); err == nil {
		t.Errorf("Compare() succeeded after Clear")
	}
}

func TestSavedSnapshotIsIsolated(t *testing.T) {
	store := NewStore(zap.NewNop())

	result := buildResult(t, "Base", 1_000_000)
	if err := store.Save("Base", *result); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the caller's copy must not reach the stored snapshot.
	result.Cashflow.Repayments[0] = -1
	result.Records[0].Revenue = -1

	if err := store.Save("Other", *buildResult(t, "Other", 1_000_000)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	rows, err := store.Compare([]string{"Base", "Other"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if rows[0].Cashflow.Repayments[0] == -1 {
		t.Errorf("stored snapshot shares memory with the caller's result")
	}
}
