// Package loans provides the EMI and amortization schedule calculations.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/mathutil"
	"github.com/iwvelando/bizcalc/pkg/validation"
	"go.uber.org/zap"
)

// Terms holds the inputs of an amortizing loan.
type Terms struct {
	Principal         float64 `json:"principal" yaml:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent" yaml:"annualRatePercent"`
	Years             float64 `json:"years" yaml:"years"`
}

// Entry holds the values for a given month of the schedule.
type Entry struct {
	Month            int     `json:"month" yaml:"month"`
	PrincipalPortion float64 `json:"principalPortion" yaml:"principalPortion"`
	InterestPortion  float64 `json:"interestPortion" yaml:"interestPortion"`
	RemainingBalance float64 `json:"remainingBalance" yaml:"remainingBalance"`
	Installment      float64 `json:"installment" yaml:"installment"`
}

// EMIResult is the outcome of an EMI calculation.
type EMIResult struct {
	Principal         float64 `json:"principal" yaml:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent" yaml:"annualRatePercent"`
	Years             float64 `json:"years" yaml:"years"`
	Months            int     `json:"months" yaml:"months"`
	Installment       float64 `json:"installment" yaml:"installment"`
	TotalPayment      float64 `json:"totalPayment" yaml:"totalPayment"`
	TotalInterest     float64 `json:"totalInterest" yaml:"totalInterest"`
	Schedule          []Entry `json:"schedule" yaml:"schedule"`
}

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// CalculateMonthlyPayment calculates the monthly installment for a loan using
// the standard amortization formula.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	monthlyRate := MonthlyRate(annualRatePercent)
	if monthlyRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	power := math.Pow(1+monthlyRate, float64(termMonths))
	return principal * monthlyRate * power / (power - 1)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingBalance, annualRatePercent float64) float64 {
	return remainingBalance * MonthlyRate(annualRatePercent)
}

// TermMonths converts a term in years into a number of monthly installments.
// Terms that do not land on a whole month are rejected rather than truncated,
// as are terms longer than MaxTermMonths.
func TermMonths(years float64) (int, error) {
	months := years * constants.MonthsPerYear
	if months > constants.MaxTermMonths {
		return 0, validation.Fail(validation.ErrTermTooLong, "years", years)
	}
	if !mathutil.IsWhole(months, constants.TermTolerance) {
		return 0, validation.Fail(validation.ErrNonIntegerTerm, "years", years)
	}
	return int(math.Round(months)), nil
}

// Validate checks the loan terms without computing anything.
func (t Terms) Validate() error {
	if err := validation.RequireFinite(
		validation.Field{Name: "principal", Value: t.Principal},
		validation.Field{Name: "annualRatePercent", Value: t.AnnualRatePercent},
		validation.Field{Name: "years", Value: t.Years},
	); err != nil {
		return err
	}
	if err := validation.FirstError(
		validation.RequirePositive("principal", t.Principal),
		validation.RequireNonNegativeRate("annualRatePercent", t.AnnualRatePercent),
		validation.RequirePositive("years", t.Years),
	); err != nil {
		return err
	}
	_, err := TermMonths(t.Years)
	return err
}

// ScheduleGenerator provides utilities for generating loan amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Compute validates the terms and returns the installment, totals and the
// full month-by-month schedule.
func (g *ScheduleGenerator) Compute(terms Terms) (EMIResult, error) {
	if err := terms.Validate(); err != nil {
		return EMIResult{}, err
	}
	months, _ := TermMonths(terms.Years)

	installment := CalculateMonthlyPayment(terms.Principal, terms.AnnualRatePercent, months)
	totalPayment := installment * float64(months)
	if err := validation.RequireFiniteResult(
		validation.Field{Name: "installment", Value: installment},
		validation.Field{Name: "totalPayment", Value: totalPayment},
	); err != nil {
		return EMIResult{}, err
	}

	result := EMIResult{
		Principal:         terms.Principal,
		AnnualRatePercent: terms.AnnualRatePercent,
		Years:             terms.Years,
		Months:            months,
		Installment:       installment,
		TotalPayment:      totalPayment,
		TotalInterest:     totalPayment - terms.Principal,
		Schedule:          g.GenerateSchedule(terms.Principal, terms.AnnualRatePercent, installment, months),
	}

	g.logger.Debug(fmt.Sprintf("computed EMI of %.2f over %d months", installment, months),
		zap.String("op", "loans.Compute"),
		zap.Float64("principal", terms.Principal),
		zap.Float64("annualRatePercent", terms.AnnualRatePercent),
		zap.Float64("totalInterest", mathutil.Round(result.TotalInterest)),
	)
	return result, nil
}

// GenerateSchedule splits every installment into its interest and principal
// portions. Inputs are assumed valid; use Compute for checked access.
func (g *ScheduleGenerator) GenerateSchedule(principal, annualRatePercent, installment float64, termMonths int) []Entry {
	schedule := make([]Entry, 0, termMonths)
	balance := principal

	for month := 1; month <= termMonths; month++ {
		interest := CalculateInterestPayment(balance, annualRatePercent)
		principalPortion := installment - interest
		balance = mathutil.Max(0, balance-principalPortion)

		if month == termMonths {
			if !mathutil.IsZero(balance) {
				g.logger.Warn("residual balance at end of term",
					zap.String("op", "loans.GenerateSchedule"),
					zap.Float64("balance", balance),
				)
			}
			// We will get machine error otherwise so just set to 0.
			balance = 0
		}

		schedule = append(schedule, Entry{
			Month:            month,
			PrincipalPortion: principalPortion,
			InterestPortion:  interest,
			RemainingBalance: balance,
			Installment:      installment,
		})
	}

	return schedule
}

// ComputeEMI is the logger-free entry point for callers that only need the
// numbers.
func ComputeEMI(principal, annualRatePercent, years float64) (EMIResult, error) {
	return NewScheduleGenerator(nil).Compute(Terms{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		Years:             years,
	})
}
