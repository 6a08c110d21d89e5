package loans

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/iwvelando/bizcalc/pkg/testutil"
	"github.com/iwvelando/bizcalc/pkg/validation"
	"go.uber.org/zap"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		termMonths        int
		expectedRange     []float64 // [min, max] expected range
	}{
		{
			name:              "20-year home loan",
			principal:         1000000,
			annualRatePercent: 8.5,
			termMonths:        240,
			expectedRange:     []float64{8678.22, 8678.24}, // Around ₹8,678.23
		},
		{
			name:              "5-year car loan",
			principal:         500000,
			annualRatePercent: 9.0,
			termMonths:        60,
			expectedRange:     []float64{10370, 10390}, // Around ₹10,379
		},
		{
			name:              "Zero interest loan",
			principal:         12000,
			annualRatePercent: 0.0,
			termMonths:        60,
			expectedRange:     []float64{200, 200}, // Exactly ₹200
		},
		{
			name:              "High interest personal loan",
			principal:         100000,
			annualRatePercent: 18.0,
			termMonths:        36,
			expectedRange:     []float64{3610, 3625}, // Around ₹3,615
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualRatePercent, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name              string
		remainingBalance  float64
		annualRatePercent float64
		expected          float64
	}{
		{"Home loan first month", 1000000, 8.5, 7083.33},
		{"Car loan", 15000, 4.5, 56.25},
		{"Zero interest", 10000, 0.0, 0.0},
		{"High interest", 5000, 24.0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingBalance, tt.annualRatePercent)

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestComputeEMIReferenceValues(t *testing.T) {
	result, err := ComputeEMI(1000000, 8.5, 20)
	if err != nil {
		t.Fatalf("ComputeEMI returned error: %v", err)
	}

	if result.Principal != 1000000 || result.AnnualRatePercent != 8.5 || result.Years != 20 {
		t.Errorf("inputs not echoed: %+v", result)
	}
	testutil.AssertClose(t, "installment", 8678.23, result.Installment, 0.01)
	testutil.AssertClose(t, "totalPayment", 2082775.76, result.TotalPayment, 0.05)
	testutil.AssertClose(t, "totalInterest", 1082775.76, result.TotalInterest, 0.05)
	if len(result.Schedule) != 240 || result.Months != 240 {
		t.Errorf("schedule length = %d (months %d), expected 240", len(result.Schedule), result.Months)
	}
}

func TestComputeEMIScheduleInvariants(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		years             float64
	}{
		{"Home loan", 1000000, 8.5, 20},
		{"Short personal loan", 100000, 10, 1},
		{"Half-year term", 250000, 12, 2.5},
		{"Thirty-year mortgage", 7500000, 6.75, 30},
		{"Zero rate", 120000, 0, 3},
		{"Tiny rate", 50000, 0.01, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeEMI(tt.principal, tt.annualRatePercent, tt.years)
			if err != nil {
				t.Fatalf("ComputeEMI returned error: %v", err)
			}

			expectedMonths := int(math.Round(tt.years * 12))
			if len(result.Schedule) != expectedMonths {
				t.Fatalf("schedule length = %d, expected %d", len(result.Schedule), expectedMonths)
			}

			last := result.Schedule[len(result.Schedule)-1]
			if last.RemainingBalance != 0 {
				t.Errorf("final balance = %v, expected 0", last.RemainingBalance)
			}

			sum := 0.0
			for i, entry := range result.Schedule {
				if entry.Month != i+1 {
					t.Fatalf("entry %d has month %d", i, entry.Month)
				}
				if entry.InterestPortion < 0 || entry.PrincipalPortion < 0 || entry.RemainingBalance < 0 {
					t.Fatalf("negative component in month %d: %+v", entry.Month, entry)
				}
				if entry.Installment != result.Installment {
					t.Fatalf("month %d installment %v differs from %v", entry.Month, entry.Installment, result.Installment)
				}
				sum += entry.PrincipalPortion
			}
			testutil.AssertRelativeClose(t, "sum of principal portions", tt.principal, sum, 1e-6)

			if result.TotalPayment < result.Principal {
				t.Errorf("total payment %v below principal %v", result.TotalPayment, result.Principal)
			}
			if result.TotalInterest != result.TotalPayment-result.Principal {
				t.Errorf("total interest %v != total payment - principal", result.TotalInterest)
			}
		})
	}
}

func TestComputeEMIZeroRateIsExact(t *testing.T) {
	result, err := ComputeEMI(1000000, 0, 7)
	if err != nil {
		t.Fatalf("ComputeEMI returned error: %v", err)
	}

	expected := 1000000.0 / (7 * 12)
	if result.Installment != expected {
		t.Errorf("installment = %v, expected exactly %v", result.Installment, expected)
	}
	if result.TotalInterest > 1e-6 || result.TotalInterest < -1e-6 {
		t.Errorf("total interest = %v, expected 0", result.TotalInterest)
	}
	for _, entry := range result.Schedule {
		if entry.InterestPortion != 0 {
			t.Fatalf("month %d carries interest %v", entry.Month, entry.InterestPortion)
		}
	}
}

func TestComputeEMIErrors(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		years             float64
		wantErr           error
		wantField         string
	}{
		{"Zero principal", 0, 8.5, 20, validation.ErrNonPositiveAmount, "principal"},
		{"Negative principal", -1, 8.5, 20, validation.ErrNonPositiveAmount, "principal"},
		{"Zero years", 100000, 8.5, 0, validation.ErrNonPositiveAmount, "years"},
		{"Negative years", 100000, 8.5, -2, validation.ErrNonPositiveAmount, "years"},
		{"Negative rate", 100000, -1, 5, validation.ErrNonPositiveRate, "annualRatePercent"},
		{"Fractional month", 100000, 8.5, 1.3, validation.ErrNonIntegerTerm, "years"},
		{"NaN principal", math.NaN(), 8.5, 20, validation.ErrNonFiniteInput, "principal"},
		{"Infinite rate", 100000, math.Inf(1), 20, validation.ErrNonFiniteInput, "annualRatePercent"},
		{"Infinite years", 100000, 8.5, math.Inf(1), validation.ErrNonFiniteInput, "years"},
		{"Astronomical term", 100000, 8.5, 1e300, validation.ErrTermTooLong, "years"},
		{"Term just past the limit", 100000, 8.5, 101, validation.ErrTermTooLong, "years"},
		{"Rate overflows the installment", 100000, 10000, 30, validation.ErrNumericOverflow, "installment"},
		{"Principal overflows the installment", 1e308, 25, 30, validation.ErrNumericOverflow, "installment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeEMI(tt.principal, tt.annualRatePercent, tt.years)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, expected %v", err, tt.wantErr)
			}
			if !errors.Is(err, validation.ErrInvalidInput) {
				t.Errorf("error %v does not match ErrInvalidInput", err)
			}
			var inputErr *validation.InputError
			if errors.As(err, &inputErr) && inputErr.Field != tt.wantField {
				t.Errorf("field = %q, expected %q", inputErr.Field, tt.wantField)
			}
			if result.Schedule != nil || result.Installment != 0 {
				t.Errorf("partial result returned alongside error: %+v", result)
			}
		})
	}
}

func TestComputeEMIIsDeterministic(t *testing.T) {
	generator := NewScheduleGenerator(zap.NewNop())
	terms := Terms{Principal: 2500000, AnnualRatePercent: 9.15, Years: 15}

	first, err := generator.Compute(terms)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	second, err := generator.Compute(terms)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Compute calls produced different results")
	}
}

func TestTermMonths(t *testing.T) {
	tests := []struct {
		years    float64
		expected int
		wantErr  bool
	}{
		{20, 240, false},
		{2.5, 30, false},
		{0.25, 3, false},
		{1.3, 0, true},
		{1.0 / 3.0, 4, false},
		{100, 1200, false},
	}

	for _, tt := range tests {
		months, err := TermMonths(tt.years)
		if tt.wantErr {
			if !errors.Is(err, validation.ErrNonIntegerTerm) {
				t.Errorf("TermMonths(%v) error = %v, expected ErrNonIntegerTerm", tt.years, err)
			}
			continue
		}
		if err != nil || months != tt.expected {
			t.Errorf("TermMonths(%v) = %d, %v; expected %d", tt.years, months, err, tt.expected)
		}
	}

	for _, years := range []float64{100.5, 1e300, math.MaxFloat64} {
		if _, err := TermMonths(years); !errors.Is(err, validation.ErrTermTooLong) {
			t.Errorf("TermMonths(%v) error = %v, expected ErrTermTooLong", years, err)
		}
	}
}
