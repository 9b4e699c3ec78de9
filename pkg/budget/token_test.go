package budget_test

import (
	"strings"
	"testing"

	"github.com/brandquill/ragcontext/pkg/budget"
)

func TestEstimatedCounter_Count(t *testing.T) {
	counter := budget.NewEstimatedCounter()

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			name:     "empty string",
			text:     "",
			expected: 0,
		},
		{
			name:     "single char rounds up",
			text:     "a",
			expected: 1, // ceil(1/4) = 1
		},
		{
			name:     "exact multiple",
			text:     "abcdefgh",
			expected: 2, // 8 chars / 4 = 2
		},
		{
			name:     "rounds up on remainder",
			text:     "abcdefghi",
			expected: 3, // ceil(9/4) = 3
		},
		{
			name:     "longer text",
			text:     strings.Repeat("x", 400),
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := counter.Count(tt.text)
			if result != tt.expected {
				t.Errorf("Count(%q) = %d, want %d", tt.text, result, tt.expected)
			}
		})
	}
}

func TestEstimatedCounter_ZeroRatioFallsBack(t *testing.T) {
	counter := &budget.EstimatedCounter{CharsPerToken: 0}

	if got := counter.Count("abcdefgh"); got != 2 {
		t.Errorf("Count with zero ratio = %d, want 2 (default ratio)", got)
	}
}

func TestDefaultTokenCounter_Deterministic(t *testing.T) {
	counter := budget.DefaultTokenCounter()

	first := counter.Count("the same text every time")
	second := counter.Count("the same text every time")

	if first != second {
		t.Errorf("default counter not deterministic: %d vs %d", first, second)
	}
	if first <= 0 {
		t.Errorf("expected positive count, got %d", first)
	}
}
