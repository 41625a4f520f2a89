// Package forecast defines the data structures related to a lending forecast
// and includes functions for computing the projections.
package forecast

import (
	"math"

	"github.com/massimocristi1970/lending-forecast-tool/pkg/constants"
	"github.com/massimocristi1970/lending-forecast-tool/pkg/mathutil"
	"go.uber.org/zap"
)

// Parameters holds one scenario's lending assumptions. Rates are fractions,
// not percentages; conversion happens at the configuration boundary.
type Parameters struct {
	Name                  string  `json:"name"`
	InitialLendingVolume  float64 `json:"initialLendingVolume"`
	MonthlyGrowthRate     float64 `json:"monthlyGrowthRate"`
	MinLoanSize           float64 `json:"minLoanSize"`
	MaxLoanSize           float64 `json:"maxLoanSize"`
	LoanTermMonths        int     `json:"loanTermMonths"`
	CostPerFundedLoan     float64 `json:"costPerFundedLoan"`
	BadDebtRate           float64 `json:"badDebtRate"`
	RecoveryRate          float64 `json:"recoveryRate"`
	BaseRevenuePerLoan    float64 `json:"baseRevenuePerLoan"`
	FixedMonthlyOverhead  float64 `json:"fixedMonthlyOverhead"`
	VariableCostFraction  float64 `json:"variableCostFraction"`
	ForecastHorizonMonths int     `json:"forecastHorizonMonths"`
}

// UnitEconomics holds the per-loan figures derived once from a parameter set;
// they are constant across the forecast horizon.
type UnitEconomics struct {
	AverageLoanSize        float64 `json:"averageLoanSize"`
	RevenuePerLoan         float64 `json:"revenuePerLoan"`
	BadDebtPerLoan         float64 `json:"badDebtPerLoan"`
	NetContributionPerLoan float64 `json:"netContributionPerLoan"`
	NetContributionMargin  float64 `json:"netContributionMargin"`
}

// MonthlyRecord holds one forecast month. Month is 1-based.
type MonthlyRecord struct {
	Month            int     `json:"month"`
	LendingVolume    float64 `json:"lendingVolume"`
	LoansFunded      int     `json:"loansFunded"`
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	Provision        float64 `json:"provision"`
	VariableCost     float64 `json:"variableCost"`
	FixedCost        float64 `json:"fixedCost"`
	NetContribution  float64 `json:"netContribution"`
	TotalExpenditure float64 `json:"totalExpenditure"`
	NetCashflow      float64 `json:"netCashflow"`
}

// Totals holds the per-column sums across all forecast months.
type Totals struct {
	LendingVolume    float64 `json:"lendingVolume"`
	LoansFunded      int     `json:"loansFunded"`
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	Provision        float64 `json:"provision"`
	VariableCost     float64 `json:"variableCost"`
	FixedCost        float64 `json:"fixedCost"`
	NetContribution  float64 `json:"netContribution"`
	TotalExpenditure float64 `json:"totalExpenditure"`
	NetCashflow      float64 `json:"netCashflow"`
}

// CashflowSeries holds the repayment-amortized view of the forecast. Both
// slices run horizon+term months so the final cohort's repayments land inside
// the series.
type CashflowSeries struct {
	Repayments []float64 `json:"repayments"`
	Net        []float64 `json:"net"`
}

// Result holds all information related to a specific forecast run.
type Result struct {
	Name                 string          `json:"name"`
	Parameters           Parameters      `json:"parameters"`
	UnitEconomics        UnitEconomics   `json:"unitEconomics"`
	Records              []MonthlyRecord `json:"records"`
	Totals               Totals          `json:"totals"`
	AverageMonthlyGrowth float64         `json:"averageMonthlyGrowth"`
	Cashflow             CashflowSeries  `json:"cashflow"`
}

// Engine computes lending forecasts.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a forecast engine with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ComputeUnitEconomics derives the constant per-loan figures from a parameter
// set. It fails with InvalidRangeError when the loan size range is inverted
// or empty; all other inputs are range-constrained by the caller.
func (e *Engine) ComputeUnitEconomics(params Parameters) (UnitEconomics, error) {
	if params.MaxLoanSize <= params.MinLoanSize {
		return UnitEconomics{}, &InvalidRangeError{
			MinLoanSize: params.MinLoanSize,
			MaxLoanSize: params.MaxLoanSize,
		}
	}

	averageLoanSize := (params.MinLoanSize + params.MaxLoanSize) / 2

	// Revenue scales with loan size and term relative to the reference basis.
	loanSizeFactor := averageLoanSize / constants.ReferenceLoanSize
	loanTermFactor := float64(params.LoanTermMonths) / constants.ReferenceLoanTermMonths
	revenuePerLoan := params.BaseRevenuePerLoan * loanSizeFactor * loanTermFactor

	badDebtPerLoan := averageLoanSize * params.BadDebtRate * (1 - params.RecoveryRate)
	netContributionPerLoan := revenuePerLoan - params.CostPerFundedLoan - badDebtPerLoan

	return UnitEconomics{
		AverageLoanSize:        averageLoanSize,
		RevenuePerLoan:         revenuePerLoan,
		BadDebtPerLoan:         badDebtPerLoan,
		NetContributionPerLoan: netContributionPerLoan,
		NetContributionMargin:  mathutil.CalculatePercentage(netContributionPerLoan, revenuePerLoan),
	}, nil
}

// ComputeMonthlyRecord computes one forecast month. month is 1-based and the
// result is deterministic given its inputs.
func ComputeMonthlyRecord(month int, params Parameters, unitEcon UnitEconomics) MonthlyRecord {
	lendingVolume := params.InitialLendingVolume * math.Pow(1+params.MonthlyGrowthRate, float64(month-1))

	// Fractional loans are not funded: truncate, never round up.
	loansFunded := int(math.Floor(lendingVolume / unitEcon.AverageLoanSize))

	revenue := float64(loansFunded) * unitEcon.RevenuePerLoan
	cost := float64(loansFunded) * params.CostPerFundedLoan
	provision := float64(loansFunded) * unitEcon.BadDebtPerLoan
	variableCost := revenue * params.VariableCostFraction

	totalExpenditure := cost + provision + variableCost + params.FixedMonthlyOverhead

	return MonthlyRecord{
		Month:         month,
		LendingVolume: lendingVolume,
		LoansFunded:   loansFunded,
		Revenue:       revenue,
		Cost:          cost,
		Provision:     provision,
		VariableCost:  variableCost,
		FixedCost:     params.FixedMonthlyOverhead,
		// Contribution margin excludes fixed overhead; the bottom line includes it.
		NetContribution:  revenue - cost - provision - variableCost,
		TotalExpenditure: totalExpenditure,
		NetCashflow:      revenue - totalExpenditure,
	}
}

// BuildForecast produces the full projection for one parameter set: one
// MonthlyRecord per month in 1..ForecastHorizonMonths, per-column totals, the
// achieved average monthly growth, and the amortized cashflow series.
func (e *Engine) BuildForecast(params Parameters) (*Result, error) {
	unitEcon, err := e.ComputeUnitEconomics(params)
	if err != nil {
		return nil, err
	}
	if params.LoanTermMonths <= 0 {
		return nil, &InvalidTermError{TermMonths: params.LoanTermMonths}
	}

	result := &Result{
		Name:          params.Name,
		Parameters:    params,
		UnitEconomics: unitEcon,
		Records:       make([]MonthlyRecord, 0, params.ForecastHorizonMonths),
	}

	for month := 1; month <= params.ForecastHorizonMonths; month++ {
		record := ComputeMonthlyRecord(month, params, unitEcon)
		result.Records = append(result.Records, record)

		result.Totals.LendingVolume += record.LendingVolume
		result.Totals.LoansFunded += record.LoansFunded
		result.Totals.Revenue += record.Revenue
		result.Totals.Cost += record.Cost
		result.Totals.Provision += record.Provision
		result.Totals.VariableCost += record.VariableCost
		result.Totals.FixedCost += record.FixedCost
		result.Totals.NetContribution += record.NetContribution
		result.Totals.TotalExpenditure += record.TotalExpenditure
		result.Totals.NetCashflow += record.NetCashflow
	}

	result.AverageMonthlyGrowth = averageMonthlyGrowth(result.Records)

	cashflow, err := e.BuildCashflowSeries(result.Records, params)
	if err != nil {
		return nil, err
	}
	result.Cashflow = cashflow

	e.logger.Debug("forecast built",
		zap.String("op", "forecast.BuildForecast"),
		zap.String("scenario", params.Name),
		zap.Int("months", len(result.Records)),
		zap.Int("loansFunded", result.Totals.LoansFunded),
	)

	return result, nil
}

// averageMonthlyGrowth returns the geometric mean growth rate achieved
// between the first and last months. Defined as 0 for a one-month horizon.
func averageMonthlyGrowth(records []MonthlyRecord) float64 {
	if len(records) < 2 {
		return 0
	}
	first := records[0].LendingVolume
	last := records[len(records)-1].LendingVolume
	if first == 0 {
		return 0
	}
	intervals := float64(len(records) - 1)
	return math.Pow(last/first, 1/intervals) - 1
}

// BuildCashflowSeries spreads each month's recognized revenue and total
// expenditure evenly across the loan term, starting in the month of
// origination. The series run horizon+term months; total repayments over the
// extended horizon equal total recognized revenue over the base horizon.
func (e *Engine) BuildCashflowSeries(records []MonthlyRecord, params Parameters) (CashflowSeries, error) {
	if params.LoanTermMonths <= 0 {
		return CashflowSeries{}, &InvalidTermError{TermMonths: params.LoanTermMonths}
	}

	length := len(records) + params.LoanTermMonths
	series := CashflowSeries{
		Repayments: make([]float64, length),
		Net:        make([]float64, length),
	}

	term := float64(params.LoanTermMonths)
	for _, record := range records {
		perPeriodRevenue := record.Revenue / term
		perPeriodExpense := record.TotalExpenditure / term

		for offset := 0; offset < params.LoanTermMonths; offset++ {
			index := record.Month - 1 + offset
			if index >= length {
				break
			}
			series.Repayments[index] += perPeriodRevenue
			series.Net[index] += perPeriodRevenue - perPeriodExpense
		}
	}

	return series, nil
}
