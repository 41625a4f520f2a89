package mathutil

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected float64
	}{
		{name: "Two decimals", val: 24_997.504, expected: 24_997.5},
		{name: "Rounds up", val: 1.006, expected: 1.01},
		{name: "Negative", val: -1.254, expected: -1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.val)
			if !WithinTolerance(got, tt.expected, 1e-9) {
				t.Errorf("Round(%v) = %v, expected %v", tt.val, got, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.004, 100.0, 0.01) {
		t.Errorf("WithinTolerance(100.004, 100.0, 0.01) = false, expected true")
	}
	if WithinTolerance(100.02, 100.0, 0.01) {
		t.Errorf("WithinTolerance(100.02, 100.0, 0.01) = true, expected false")
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.005) {
		t.Errorf("IsZero(0.005) = false, expected true within currency tolerance")
	}
	if IsZero(0.02) {
		t.Errorf("IsZero(0.02) = true, expected false")
	}
}

func TestCalculatePercentage(t *testing.T) {
	if got := CalculatePercentage(230, 450); !WithinTolerance(got, 51.1111, 0.001) {
		t.Errorf("CalculatePercentage(230, 450) = %v, expected ~51.11", got)
	}
	if got := CalculatePercentage(10, 0); got != 0 {
		t.Errorf("CalculatePercentage(10, 0) = %v, expected 0", got)
	}
}

func TestFromPercentage(t *testing.T) {
	if got := FromPercentage(20); got != 0.2 {
		t.Errorf("FromPercentage(20) = %v, expected 0.2", got)
	}
	if got := FromPercentage(-50); got != -0.5 {
		t.Errorf("FromPercentage(-50) = %v, expected -0.5", got)
	}
}
