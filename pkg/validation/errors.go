package validation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput matches every error produced by the calculators. None of
// them are transient; retrying with the same input fails the same way.
var ErrInvalidInput = errors.New("invalid input")

// Error kinds. Use errors.Is against these to tell failures apart.
var (
	ErrNonPositiveAmount      = errors.New("amount must be greater than zero")
	ErrNegativeValue          = errors.New("value must not be negative")
	ErrNonPositiveRate        = errors.New("rate out of range")
	ErrInvalidMargin          = errors.New("price must exceed variable cost")
	ErrUndefinedAnnualization = errors.New("annualized return is undefined when the final value is not positive")
	ErrUndefinedMultiple      = errors.New("multiple is undefined for zero profit")
	ErrNonIntegerTerm         = errors.New("loan term must be a whole number of months")
	ErrNonFiniteInput         = errors.New("value must be a finite number")
	ErrTermTooLong            = errors.New("loan term exceeds the longest supported term")
	ErrNumericOverflow        = errors.New("result is too large to represent")
)

// InputError describes the first invalid input a calculator found.
type InputError struct {
	Kind  error
	Field string
	Value float64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v (got %g)", e.Field, e.Kind, e.Value)
}

// Unwrap returns the error kind.
func (e *InputError) Unwrap() error {
	return e.Kind
}

// Is lets every InputError match ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func newInputError(kind error, field string, value float64) error {
	return &InputError{Kind: kind, Field: field, Value: value}
}

// Field pairs an input name with its value so guards can report which input
// failed.
type Field struct {
	Name  string
	Value float64
}

// RequireFinite returns ErrNonFiniteInput for the first field that is NaN or
// infinite.
func RequireFinite(fields ...Field) error {
	for _, f := range fields {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			return newInputError(ErrNonFiniteInput, f.Name, f.Value)
		}
	}
	return nil
}

// RequireFiniteResult returns ErrNumericOverflow for the first computed value
// that is NaN or infinite. Finite inputs can still overflow float64 in the
// formulas, so engines check their outputs before returning them.
func RequireFiniteResult(fields ...Field) error {
	for _, f := range fields {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			return newInputError(ErrNumericOverflow, f.Name, f.Value)
		}
	}
	return nil
}

// RequirePositive fails with ErrNonPositiveAmount when value <= 0.
func RequirePositive(field string, value float64) error {
	if value <= 0 {
		return newInputError(ErrNonPositiveAmount, field, value)
	}
	return nil
}

// RequireNonNegative fails with ErrNegativeValue when value < 0.
func RequireNonNegative(field string, value float64) error {
	if value < 0 {
		return newInputError(ErrNegativeValue, field, value)
	}
	return nil
}

// RequirePositiveRate fails with ErrNonPositiveRate when rate <= 0.
func RequirePositiveRate(field string, rate float64) error {
	if rate <= 0 {
		return newInputError(ErrNonPositiveRate, field, rate)
	}
	return nil
}

// RequireNonNegativeRate fails with ErrNonPositiveRate when rate < 0.
func RequireNonNegativeRate(field string, rate float64) error {
	if rate < 0 {
		return newInputError(ErrNonPositiveRate, field, rate)
	}
	return nil
}

// Fail builds an InputError of the given kind. Calculators use it for checks
// specific to their formula.
func Fail(kind error, field string, value float64) error {
	return newInputError(kind, field, value)
}

// FirstError returns the first non-nil error in errs.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
