package finance

import (
	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/mathutil"
	"github.com/iwvelando/bizcalc/pkg/validation"
)

// GratuityFormula is the human-readable form of the calculation.
const GratuityFormula = "Gratuity = Years of Service × Monthly Salary × 15 / 26"

// GratuityInputs holds the salary (basic plus dearness allowance) and the
// service period.
type GratuityInputs struct {
	MonthlySalary  float64 `json:"monthlySalary" yaml:"monthlySalary"`
	YearsOfService float64 `json:"yearsOfService" yaml:"yearsOfService"`
}

// GratuityResult reports the gratuity payable, capped at the statutory
// maximum.
type GratuityResult struct {
	GratuityInputs  `yaml:",inline"`
	GratuityPerYear float64 `json:"gratuityPerYear" yaml:"gratuityPerYear"`
	TotalGratuity   float64 `json:"totalGratuity" yaml:"totalGratuity"`
	MaximumGratuity float64 `json:"maximumGratuity" yaml:"maximumGratuity"`
	Gratuity        float64 `json:"gratuity" yaml:"gratuity"`
	Capped          bool    `json:"capped" yaml:"capped"`
	Formula         string  `json:"formula" yaml:"formula"`
}

// Validate checks the inputs without computing anything.
func (in GratuityInputs) Validate() error {
	if err := validation.RequireFinite(
		validation.Field{Name: "monthlySalary", Value: in.MonthlySalary},
		validation.Field{Name: "yearsOfService", Value: in.YearsOfService},
	); err != nil {
		return err
	}
	return validation.FirstError(
		validation.RequirePositive("monthlySalary", in.MonthlySalary),
		validation.RequireNonNegative("yearsOfService", in.YearsOfService),
	)
}

// Compute applies 15 days of salary per year of service over a 26-day month.
func (in GratuityInputs) Compute() (GratuityResult, error) {
	if err := in.Validate(); err != nil {
		return GratuityResult{}, err
	}

	perYear := in.MonthlySalary * constants.GratuityDaysPerYear / constants.GratuityWorkingDaysPerMonth
	total := perYear * in.YearsOfService
	if err := validation.RequireFiniteResult(
		validation.Field{Name: "gratuityPerYear", Value: perYear},
		validation.Field{Name: "totalGratuity", Value: total},
	); err != nil {
		return GratuityResult{}, err
	}

	return GratuityResult{
		GratuityInputs:  in,
		GratuityPerYear: perYear,
		TotalGratuity:   total,
		MaximumGratuity: constants.MaximumGratuity,
		Gratuity:        mathutil.Min(total, constants.MaximumGratuity),
		Capped:          total > constants.MaximumGratuity,
		Formula:         GratuityFormula,
	}, nil
}

// ComputeGratuity calculates the gratuity for a monthly salary and years of
// service.
func ComputeGratuity(monthlySalary, yearsOfService float64) (GratuityResult, error) {
	return GratuityInputs{MonthlySalary: monthlySalary, YearsOfService: yearsOfService}.Compute()
}
