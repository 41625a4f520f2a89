package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a pound sign and thousands separators (e.g., "-£1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount), 2)
	if amount < 0 {
		return "-£" + formatted
	}
	return "£" + formatted
}

// WholeCurrency returns a currency string rounded to whole units (e.g., "-£1,235"),
// which is how tabular output renders amounts.
func WholeCurrency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount), 0)
	if amount < 0 {
		return "-£" + formatted
	}
	return "£" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount), 2)
	return sign + formatted
}

func formatPositiveCurrency(value float64, decimals int) string {
	formatted := fmt.Sprintf("%.*f", decimals, value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if decimals == 0 {
		return intPart
	}
	decPart := strings.Repeat("0", decimals)
	if len(parts) == 2 {
		decPart = parts[1]
	}
	return intPart + "." + decPart
}
