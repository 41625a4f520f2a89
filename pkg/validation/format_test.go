package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "Pretty", format: "pretty", wantErr: false},
		{name: "CSV", format: "csv", wantErr: false},
		{name: "Unknown", format: "xml", wantErr: true},
		{name: "Empty", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestLoanTermAllowed(t *testing.T) {
	for _, term := range []int{1, 2, 3, 4, 5, 6, 12} {
		if !LoanTermAllowed(term) {
			t.Errorf("LoanTermAllowed(%d) = false, expected true", term)
		}
	}
	for _, term := range []int{0, 7, 8, 24, -1} {
		if LoanTermAllowed(term) {
			t.Errorf("LoanTermAllowed(%d) = true, expected false", term)
		}
	}
}

func TestGrowthRateInRange(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		expected bool
	}{
		{name: "Flat", rate: 0, expected: true},
		{name: "Lower bound", rate: -0.5, expected: true},
		{name: "Upper bound", rate: 1.0, expected: true},
		{name: "Below", rate: -0.51, expected: false},
		{name: "Above", rate: 1.5, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GrowthRateInRange(tt.rate); got != tt.expected {
				t.Errorf("GrowthRateInRange(%v) = %v, expected %v", tt.rate, got, tt.expected)
			}
		})
	}
}

func TestHorizonInRange(t *testing.T) {
	if !HorizonInRange(1) || !HorizonInRange(60) {
		t.Errorf("HorizonInRange should accept the reference bounds")
	}
	if HorizonInRange(0) || HorizonInRange(61) {
		t.Errorf("HorizonInRange should reject values outside 1..60")
	}
}
