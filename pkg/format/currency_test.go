package format

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/bizcalc/pkg/validation"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Ten lakh", 1000000, "₹10,00,000"},
		{"Mixed lakh grouping", 1234567, "₹12,34,567"},
		{"Crore", 123456789, "₹12,34,56,789"},
		{"Rounds EMI to whole rupees", 8678.232333, "₹8,678"},
		{"Rounds half away from zero", 2.5, "₹3"},
		{"Below a thousand", 999, "₹999"},
		{"Exactly a thousand", 1000, "₹1,000"},
		{"Zero", 0, "₹0"},
		{"Negative", -20000, "-₹20,000"},
		{"Tiny negative rounds to zero", -0.4, "₹0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Currency(tt.input)
			if err != nil {
				t.Fatalf("Currency(%v) returned error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		decimals int
		expected string
	}{
		{"Two decimals", 1234.567, 2, "1,234.57"},
		{"No decimals", 1234.567, 0, "1,235"},
		{"Trailing zeros dropped", 1234.5, 2, "1,234.5"},
		{"Whole number", 500, 2, "500"},
		{"Lakh grouping with decimals", 1234567.891, 1, "12,34,567.9"},
		{"Half rounds up", 1.005, 2, "1.01"},
		{"Percentage", 22.474487, 2, "22.47"},
		{"Negative", -1234.567, 2, "-1,234.57"},
		{"Small fraction", 0.125, 2, "0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Number(tt.input, tt.decimals)
			if err != nil {
				t.Fatalf("Number(%v, %d) returned error: %v", tt.input, tt.decimals, err)
			}
			if result != tt.expected {
				t.Errorf("Number(%v, %d) = %q, expected %q", tt.input, tt.decimals, result, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	result, err := Percent(22.474487, 2)
	if err != nil {
		t.Fatalf("Percent returned error: %v", err)
	}
	if result != "22.47%" {
		t.Errorf("Percent = %q, expected %q", result, "22.47%")
	}
}

func TestFormattingRejectsInvalidInput(t *testing.T) {
	for _, input := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Currency(input); !errors.Is(err, validation.ErrNonFiniteInput) {
			t.Errorf("Currency(%v) error = %v, expected ErrNonFiniteInput", input, err)
		}
		if _, err := Number(input, 2); !errors.Is(err, validation.ErrNonFiniteInput) {
			t.Errorf("Number(%v) error = %v, expected ErrNonFiniteInput", input, err)
		}
	}

	for _, decimals := range []int{-1, 21} {
		if _, err := Number(1, decimals); !errors.Is(err, validation.ErrInvalidInput) {
			t.Errorf("Number(1, %d) error = %v, expected ErrInvalidInput", decimals, err)
		}
	}
}

func TestNumberGrouping(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{1, "1"},
		{123, "123"},
		{1234, "1,234"},
		{12345, "12,345"},
		{123456, "1,23,456"},
		{1000000, "10,00,000"},
		{1234567.8, "12,34,568"},
		{1234567890, "1,23,45,67,890"},
		{-123456, "-1,23,456"},
	}

	for _, tt := range tests {
		result, err := Number(tt.input, 0)
		if err != nil {
			t.Fatalf("Number(%v, 0) returned error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("Number(%v, 0) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestNumberFractionDigits(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		decimals int
		expected string
	}{
		{"Shortest form kept at high precision", 0.1, 20, "0.1"},
		{"Repeating fraction", 1.0 / 3.0, 4, "0.3333"},
		{"Rounds to a whole number", 9.999, 2, "10"},
		{"Grouped with fraction", 1234567.125, 3, "12,34,567.125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Number(tt.input, tt.decimals)
			if err != nil {
				t.Fatalf("Number(%v, %d) returned error: %v", tt.input, tt.decimals, err)
			}
			if result != tt.expected {
				t.Errorf("Number(%v, %d) = %q, expected %q", tt.input, tt.decimals, result, tt.expected)
			}
		})
	}
}
