// Package finance provides the business calculators: valuation, return on
// investment, break-even and gratuity.
package finance

import (
	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/mathutil"
	"github.com/iwvelando/bizcalc/pkg/validation"
)

// ValuationInputs holds the inputs of a business valuation.
type ValuationInputs struct {
	AnnualRevenue       float64 `json:"annualRevenue" yaml:"annualRevenue"`
	ProfitMarginPercent float64 `json:"profitMarginPercent" yaml:"profitMarginPercent"`
	GrowthRatePercent   float64 `json:"growthRatePercent" yaml:"growthRatePercent"`
	DiscountRatePercent float64 `json:"discountRatePercent" yaml:"discountRatePercent"`
}

// ValuationResult is a capitalized-earnings valuation of one year of
// projected profit.
type ValuationResult struct {
	ValuationInputs `yaml:",inline"`
	Profit          float64 `json:"profit" yaml:"profit"`
	ProjectedProfit float64 `json:"projectedProfit" yaml:"projectedProfit"`
	Valuation       float64 `json:"valuation" yaml:"valuation"`
	RevenueMultiple float64 `json:"revenueMultiple" yaml:"revenueMultiple"`
	ProfitMultiple  float64 `json:"profitMultiple" yaml:"profitMultiple"`
}

// Validate checks the inputs without computing anything.
func (in ValuationInputs) Validate() error {
	if err := validation.RequireFinite(
		validation.Field{Name: "annualRevenue", Value: in.AnnualRevenue},
		validation.Field{Name: "profitMarginPercent", Value: in.ProfitMarginPercent},
		validation.Field{Name: "growthRatePercent", Value: in.GrowthRatePercent},
		validation.Field{Name: "discountRatePercent", Value: in.DiscountRatePercent},
	); err != nil {
		return err
	}
	if err := validation.FirstError(
		validation.RequirePositiveRate("discountRatePercent", in.DiscountRatePercent),
		validation.RequirePositive("annualRevenue", in.AnnualRevenue),
		validation.RequireNonNegative("profitMarginPercent", in.ProfitMarginPercent),
		validation.RequireNonNegative("growthRatePercent", in.GrowthRatePercent),
	); err != nil {
		return err
	}
	if in.ProfitMarginPercent == 0 {
		return validation.Fail(validation.ErrUndefinedMultiple, "profitMarginPercent", in.ProfitMarginPercent)
	}
	return nil
}

// Compute projects profit one year forward and capitalizes it at the
// discount rate.
func (in ValuationInputs) Compute() (ValuationResult, error) {
	if err := in.Validate(); err != nil {
		return ValuationResult{}, err
	}

	profit := mathutil.ApplyPercentage(in.AnnualRevenue, in.ProfitMarginPercent)
	projected := profit * (1 + in.GrowthRatePercent/constants.PercentageMultiplier)
	valuation := projected / (in.DiscountRatePercent / constants.PercentageMultiplier)
	revenueMultiple := valuation / in.AnnualRevenue
	profitMultiple := valuation / profit

	if err := validation.RequireFiniteResult(
		validation.Field{Name: "profit", Value: profit},
		validation.Field{Name: "projectedProfit", Value: projected},
		validation.Field{Name: "valuation", Value: valuation},
		validation.Field{Name: "revenueMultiple", Value: revenueMultiple},
		validation.Field{Name: "profitMultiple", Value: profitMultiple},
	); err != nil {
		return ValuationResult{}, err
	}

	return ValuationResult{
		ValuationInputs: in,
		Profit:          profit,
		ProjectedProfit: projected,
		Valuation:       valuation,
		RevenueMultiple: revenueMultiple,
		ProfitMultiple:  profitMultiple,
	}, nil
}

// ComputeValuation values a business from revenue, margin, growth and
// discount rate.
func ComputeValuation(revenue, profitMarginPercent, growthRatePercent, discountRatePercent float64) (ValuationResult, error) {
	return ValuationInputs{
		AnnualRevenue:       revenue,
		ProfitMarginPercent: profitMarginPercent,
		GrowthRatePercent:   growthRatePercent,
		DiscountRatePercent: discountRatePercent,
	}.Compute()
}
