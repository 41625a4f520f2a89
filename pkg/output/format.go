// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"fmt"
	"strings"

	"github.com/massimocristi1970/lending-forecast-tool/internal/forecast"
	"github.com/massimocristi1970/lending-forecast-tool/internal/scenario"
	"github.com/massimocristi1970/lending-forecast-tool/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []*forecast.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Printf("--- Results for scenario %s ---\n", result.Name)

		_, _ = p.Printf("Total Revenue: £%.0f | Total Loans: %d | Avg Monthly Growth: %.1f%% | Net Contribution Margin: %.1f%%\n",
			result.Totals.Revenue,
			result.Totals.LoansFunded,
			result.AverageMonthlyGrowth*100,
			result.UnitEconomics.NetContributionMargin,
		)

		fmt.Printf("\nPer-loan unit economics:\n")
		fmt.Printf("  Average loan size:     %s\n", format.Currency(result.UnitEconomics.AverageLoanSize))
		fmt.Printf("  Revenue per loan:      %s\n", format.Currency(result.UnitEconomics.RevenuePerLoan))
		fmt.Printf("  Cost per funded loan:  %s\n", format.Currency(result.Parameters.CostPerFundedLoan))
		fmt.Printf("  Bad debt provision:    %s\n", format.Currency(result.UnitEconomics.BadDebtPerLoan))
		fmt.Printf("  Net contribution:      %s\n", format.Currency(result.UnitEconomics.NetContributionPerLoan))

		fmt.Printf("\nMonth | Lending Volume | Loans Funded | Revenue | Cost | Provision | Variable Costs | Fixed Costs | Net Contribution | Net Cashflow\n")
		fmt.Printf("_____ | ______________ | ____________ | _______ | ____ | _________ | ______________ | ___________ | ________________ | ____________\n")
		for _, record := range result.Records {
			fmt.Printf("%5d | %s | %d | %s | %s | %s | %s | %s | %s | %s\n",
				record.Month,
				format.WholeCurrency(record.LendingVolume),
				record.LoansFunded,
				format.WholeCurrency(record.Revenue),
				format.WholeCurrency(record.Cost),
				format.WholeCurrency(record.Provision),
				format.WholeCurrency(record.VariableCost),
				format.WholeCurrency(record.FixedCost),
				format.WholeCurrency(record.NetContribution),
				format.WholeCurrency(record.NetCashflow),
			)
		}
		fmt.Printf("TOTAL | %s | %d | %s | %s | %s | %s | %s | %s | %s\n",
			format.WholeCurrency(result.Totals.LendingVolume),
			result.Totals.LoansFunded,
			format.WholeCurrency(result.Totals.Revenue),
			format.WholeCurrency(result.Totals.Cost),
			format.WholeCurrency(result.Totals.Provision),
			format.WholeCurrency(result.Totals.VariableCost),
			format.WholeCurrency(result.Totals.FixedCost),
			format.WholeCurrency(result.Totals.NetContribution),
			format.WholeCurrency(result.Totals.NetCashflow),
		)

		fmt.Printf("\nCashflow projection (repayment flow):\n")
		fmt.Printf("Month | Cashflow | Net Cashflow\n")
		fmt.Printf("_____ | ________ | ____________\n")
		for j := range result.Cashflow.Repayments {
			fmt.Printf("%5d | %s | %s\n",
				j+1,
				format.WholeCurrency(result.Cashflow.Repayments[j]),
				format.WholeCurrency(result.Cashflow.Net[j]),
			)
		}

		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []*forecast.Result) {
	fmt.Print(CsvString(results))
}

// CsvString renders the forecast and cashflow tables for each result in
// comma-separated value format.
func CsvString(results []*forecast.Result) string {
	var builder strings.Builder

	for _, result := range results {
		fmt.Fprintf(&builder, "\"scenario\",\"%s\"\n", result.Name)
		builder.WriteString(`"month","lending volume","loans funded","revenue","cost","provision","variable costs","fixed costs","net contribution","net cashflow"`)
		builder.WriteString("\n")
		for _, record := range result.Records {
			fmt.Fprintf(&builder, "\"%d\",\"%.2f\",\"%d\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
				record.Month, record.LendingVolume, record.LoansFunded, record.Revenue,
				record.Cost, record.Provision, record.VariableCost, record.FixedCost,
				record.NetContribution, record.NetCashflow)
		}
		fmt.Fprintf(&builder, "\"TOTAL\",\"%.2f\",\"%d\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
			result.Totals.LendingVolume, result.Totals.LoansFunded, result.Totals.Revenue,
			result.Totals.Cost, result.Totals.Provision, result.Totals.VariableCost,
			result.Totals.FixedCost, result.Totals.NetContribution, result.Totals.NetCashflow)

		builder.WriteString(`"month","cashflow","net cashflow"`)
		builder.WriteString("\n")
		for i := range result.Cashflow.Repayments {
			fmt.Fprintf(&builder, "\"%d\",\"%.2f\",\"%.2f\"\n",
				i+1, result.Cashflow.Repayments[i], result.Cashflow.Net[i])
		}
	}

	return builder.String()
}

// PrettyComparison outputs the side-by-side scenario comparison table.
func PrettyComparison(rows []scenario.ComparisonRow) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Scenario comparison ---\n")
	fmt.Printf("Scenario | Total Revenue | Total Loans | Total Net Contribution | Avg Revenue per Loan\n")
	fmt.Printf("________ | _____________ | ___________ | ______________________ | ____________________\n")
	for _, row := range rows {
		_, _ = p.Printf("%s | £%.0f | %d | £%.0f | £%.2f\n",
			row.Name,
			row.TotalRevenue,
			row.TotalLoans,
			row.TotalNetContribution,
			row.AvgRevenuePerLoan,
		)
	}
}
