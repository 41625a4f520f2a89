package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "Zero", amount: 0, expected: "£0.00"},
		{name: "Small", amount: 42.5, expected: "£42.50"},
		{name: "Thousands", amount: 1234.56, expected: "£1,234.56"},
		{name: "Millions", amount: 2_000_000, expected: "£2,000,000.00"},
		{name: "Negative", amount: -1234.56, expected: "-£1,234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestWholeCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "Rounds up", amount: 499_950.6, expected: "£499,951"},
		{name: "Rounds down", amount: 205_532.4, expected: "£205,532"},
		{name: "Negative", amount: -25_000.0, expected: "-£25,000"},
		{name: "Small", amount: 40, expected: "£40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WholeCurrency(tt.amount); got != tt.expected {
				t.Errorf("WholeCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-9876543.21); got != "-9,876,543.21" {
		t.Errorf("NumericCurrency() = %q, expected -9,876,543.21", got)
	}
}
