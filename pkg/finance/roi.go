package finance

import (
	"math"

	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/validation"
)

// ROIInputs holds the inputs of a return on investment calculation.
type ROIInputs struct {
	InitialInvestment float64 `json:"initialInvestment" yaml:"initialInvestment"`
	FinalValue        float64 `json:"finalValue" yaml:"finalValue"`
	TimePeriodYears   float64 `json:"timePeriodYears" yaml:"timePeriodYears"`
}

// ROIResult reports the total and compound annual return.
type ROIResult struct {
	ROIInputs               `yaml:",inline"`
	TotalGainPercent        float64 `json:"totalGainPercent" yaml:"totalGainPercent"`
	AnnualizedReturnPercent float64 `json:"annualizedReturnPercent" yaml:"annualizedReturnPercent"`
	TotalGainAmount         float64 `json:"totalGainAmount" yaml:"totalGainAmount"`
}

// Validate checks the inputs without computing anything.
func (in ROIInputs) Validate() error {
	if err := validation.RequireFinite(
		validation.Field{Name: "initialInvestment", Value: in.InitialInvestment},
		validation.Field{Name: "finalValue", Value: in.FinalValue},
		validation.Field{Name: "timePeriodYears", Value: in.TimePeriodYears},
	); err != nil {
		return err
	}
	if err := validation.FirstError(
		validation.RequirePositive("initialInvestment", in.InitialInvestment),
		validation.RequirePositive("timePeriodYears", in.TimePeriodYears),
	); err != nil {
		return err
	}
	// A non-positive growth ratio has no real root for fractional periods.
	if in.FinalValue <= 0 {
		return validation.Fail(validation.ErrUndefinedAnnualization, "finalValue", in.FinalValue)
	}
	return nil
}

// Compute returns the total gain and the CAGR over the period.
func (in ROIInputs) Compute() (ROIResult, error) {
	if err := in.Validate(); err != nil {
		return ROIResult{}, err
	}

	gain := in.FinalValue - in.InitialInvestment
	gainPercent := gain / in.InitialInvestment * constants.PercentageMultiplier
	annualized := (math.Pow(in.FinalValue/in.InitialInvestment, 1/in.TimePeriodYears) - 1) * constants.PercentageMultiplier

	if err := validation.RequireFiniteResult(
		validation.Field{Name: "totalGainAmount", Value: gain},
		validation.Field{Name: "totalGainPercent", Value: gainPercent},
		validation.Field{Name: "annualizedReturnPercent", Value: annualized},
	); err != nil {
		return ROIResult{}, err
	}

	return ROIResult{
		ROIInputs:               in,
		TotalGainPercent:        gainPercent,
		AnnualizedReturnPercent: annualized,
		TotalGainAmount:         gain,
	}, nil
}

// ComputeROI calculates the return on an investment held for
// timePeriodYears.
func ComputeROI(initialInvestment, finalValue, timePeriodYears float64) (ROIResult, error) {
	return ROIInputs{
		InitialInvestment: initialInvestment,
		FinalValue:        finalValue,
		TimePeriodYears:   timePeriodYears,
	}.Compute()
}
