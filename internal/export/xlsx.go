// Package export serializes forecast results to an xlsx workbook with four
// sheets: Forecast, Totals, Cashflow, and Parameters.
package export

import (
	"fmt"
	"io"

	"github.com/massimocristi1970/lending-forecast-tool/internal/forecast"
	"github.com/xuri/excelize/v2"
)

const (
	sheetForecast   = "Forecast"
	sheetTotals     = "Totals"
	sheetCashflow   = "Cashflow"
	sheetParameters = "Parameters"
)

// totalRowLabel marks the aggregate row appended to the Forecast sheet; the
// first column holds either an integer month or this literal.
const totalRowLabel = "TOTAL"

var forecastHeader = []string{
	"Month", "Lending Volume (£)", "Loans Funded", "Revenue (£)", "Cost (£)",
	"Provision (£)", "Variable Costs (£)", "Fixed Costs (£)",
	"Net Contribution (£)", "Net Cashflow (£)",
}

var cashflowHeader = []string{"Month", "Cashflow (£)", "Net Cashflow (£)"}

// Workbook builds the four-sheet workbook for one forecast result. The caller
// owns the returned file and must Close it.
func Workbook(result *forecast.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetForecast); err != nil {
		return nil, fmt.Errorf("failed to rename forecast sheet: %w", err)
	}
	for _, sheet := range []string{sheetTotals, sheetCashflow, sheetParameters} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	// Currency cells display with thousands separators and no decimals.
	currencyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("failed to create currency style: %w", err)
	}

	if err := writeForecastSheet(f, result, currencyStyle); err != nil {
		return nil, err
	}
	if err := writeTotalsSheet(f, result, currencyStyle); err != nil {
		return nil, err
	}
	if err := writeCashflowSheet(f, result, currencyStyle); err != nil {
		return nil, err
	}
	if err := writeParametersSheet(f, result); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteFile writes the workbook for result to path.
func WriteFile(path string, result *forecast.Result) error {
	f, err := Workbook(result)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	return nil
}

// Write streams the workbook for result to w.
func Write(w io.Writer, result *forecast.Result) error {
	f, err := Workbook(result)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func forecastRow(record forecast.MonthlyRecord) []interface{} {
	return []interface{}{
		record.Month,
		record.LendingVolume,
		record.LoansFunded,
		record.Revenue,
		record.Cost,
		record.Provision,
		record.VariableCost,
		record.FixedCost,
		record.NetContribution,
		record.NetCashflow,
	}
}

func totalsRow(totals forecast.Totals) []interface{} {
	return []interface{}{
		totalRowLabel,
		totals.LendingVolume,
		totals.LoansFunded,
		totals.Revenue,
		totals.Cost,
		totals.Provision,
		totals.VariableCost,
		totals.FixedCost,
		totals.NetContribution,
		totals.NetCashflow,
	}
}

func writeForecastSheet(f *excelize.File, result *forecast.Result, currencyStyle int) error {
	if err := writeRow(f, sheetForecast, 1, toInterfaces(forecastHeader)); err != nil {
		return err
	}

	row := 2
	for _, record := range result.Records {
		if err := writeRow(f, sheetForecast, row, forecastRow(record)); err != nil {
			return err
		}
		row++
	}
	if err := writeRow(f, sheetForecast, row, totalsRow(result.Totals)); err != nil {
		return err
	}

	return styleCurrencyColumns(f, sheetForecast, 2, row, len(forecastHeader), currencyStyle)
}

func writeTotalsSheet(f *excelize.File, result *forecast.Result, currencyStyle int) error {
	if err := writeRow(f, sheetTotals, 1, toInterfaces(forecastHeader)); err != nil {
		return err
	}
	if err := writeRow(f, sheetTotals, 2, totalsRow(result.Totals)); err != nil {
		return err
	}
	return styleCurrencyColumns(f, sheetTotals, 2, 2, len(forecastHeader), currencyStyle)
}

func writeCashflowSheet(f *excelize.File, result *forecast.Result, currencyStyle int) error {
	if err := writeRow(f, sheetCashflow, 1, toInterfaces(cashflowHeader)); err != nil {
		return err
	}

	row := 2
	for i := range result.Cashflow.Repayments {
		values := []interface{}{i + 1, result.Cashflow.Repayments[i], result.Cashflow.Net[i]}
		if err := writeRow(f, sheetCashflow, row, values); err != nil {
			return err
		}
		row++
	}

	return styleCurrencyColumns(f, sheetCashflow, 2, row-1, len(cashflowHeader), currencyStyle)
}

func writeParametersSheet(f *excelize.File, result *forecast.Result) error {
	params := result.Parameters

	// Rates export as fractions, the same basis the engine computes with.
	pairs := []struct {
		key   string
		value interface{}
	}{
		{"Scenario Name", result.Name},
		{"Initial Lending", params.InitialLendingVolume},
		{"Growth Rate", params.MonthlyGrowthRate},
		{"Minimum Loan Size", params.MinLoanSize},
		{"Maximum Loan Size", params.MaxLoanSize},
		{"Average Loan Size", result.UnitEconomics.AverageLoanSize},
		{"Loan Term", params.LoanTermMonths},
		{"Cost per Funded Loan", params.CostPerFundedLoan},
		{"Revenue per Loan", result.UnitEconomics.RevenuePerLoan},
		{"Bad Debt Rate", params.BadDebtRate},
		{"Recovery Rate", params.RecoveryRate},
		{"Base Revenue per Loan", params.BaseRevenuePerLoan},
		{"Fixed Costs", params.FixedMonthlyOverhead},
		{"Variable Cost Fraction", params.VariableCostFraction},
		{"Forecast Months", params.ForecastHorizonMonths},
	}

	if err := writeRow(f, sheetParameters, 1, []interface{}{"Parameter", "Value"}); err != nil {
		return err
	}
	for i, pair := range pairs {
		if err := writeRow(f, sheetParameters, i+2, []interface{}{pair.key, pair.value}); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to resolve cell on sheet %s: %w", sheet, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s on sheet %s: %w", cell, sheet, err)
		}
	}
	return nil
}

// styleCurrencyColumns applies the currency format to columns 2..lastCol of
// rows firstRow..lastRow; column 1 holds the month index or a label.
func styleCurrencyColumns(f *excelize.File, sheet string, firstRow, lastRow, lastCol, style int) error {
	topLeft, err := excelize.CoordinatesToCellName(2, firstRow)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(lastCol, lastRow)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, topLeft, bottomRight, style); err != nil {
		return fmt.Errorf("failed to style sheet %s: %w", sheet, err)
	}
	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
