package finance

import "github.com/iwvelando/bizcalc/pkg/validation"

// BreakEvenInputs holds the cost structure of a product.
type BreakEvenInputs struct {
	FixedCosts          float64 `json:"fixedCosts" yaml:"fixedCosts"`
	VariableCostPerUnit float64 `json:"variableCostPerUnit" yaml:"variableCostPerUnit"`
	SellingPricePerUnit float64 `json:"sellingPricePerUnit" yaml:"sellingPricePerUnit"`
}

// BreakEvenResult reports the volume at which contribution covers fixed
// costs.
type BreakEvenResult struct {
	BreakEvenInputs    `yaml:",inline"`
	BreakEvenUnits     float64 `json:"breakEvenUnits" yaml:"breakEvenUnits"`
	BreakEvenRevenue   float64 `json:"breakEvenRevenue" yaml:"breakEvenRevenue"`
	ContributionMargin float64 `json:"contributionMargin" yaml:"contributionMargin"`
}

// Validate checks the inputs without computing anything.
func (in BreakEvenInputs) Validate() error {
	if err := validation.RequireFinite(
		validation.Field{Name: "fixedCosts", Value: in.FixedCosts},
		validation.Field{Name: "variableCostPerUnit", Value: in.VariableCostPerUnit},
		validation.Field{Name: "sellingPricePerUnit", Value: in.SellingPricePerUnit},
	); err != nil {
		return err
	}
	if err := validation.FirstError(
		validation.RequireNonNegative("fixedCosts", in.FixedCosts),
		validation.RequireNonNegative("variableCostPerUnit", in.VariableCostPerUnit),
	); err != nil {
		return err
	}
	if in.SellingPricePerUnit-in.VariableCostPerUnit <= 0 {
		return validation.Fail(validation.ErrInvalidMargin, "sellingPricePerUnit", in.SellingPricePerUnit)
	}
	return nil
}

// Compute returns the break-even volume and revenue.
func (in BreakEvenInputs) Compute() (BreakEvenResult, error) {
	if err := in.Validate(); err != nil {
		return BreakEvenResult{}, err
	}

	margin := in.SellingPricePerUnit - in.VariableCostPerUnit
	units := in.FixedCosts / margin
	revenue := units * in.SellingPricePerUnit

	if err := validation.RequireFiniteResult(
		validation.Field{Name: "breakEvenUnits", Value: units},
		validation.Field{Name: "breakEvenRevenue", Value: revenue},
	); err != nil {
		return BreakEvenResult{}, err
	}

	return BreakEvenResult{
		BreakEvenInputs:    in,
		BreakEvenUnits:     units,
		BreakEvenRevenue:   revenue,
		ContributionMargin: margin,
	}, nil
}

// ComputeBreakEven calculates the break-even point for a product.
func ComputeBreakEven(fixedCosts, variableCostPerUnit, sellingPricePerUnit float64) (BreakEvenResult, error) {
	return BreakEvenInputs{
		FixedCosts:          fixedCosts,
		VariableCostPerUnit: variableCostPerUnit,
		SellingPricePerUnit: sellingPricePerUnit,
	}.Compute()
}
