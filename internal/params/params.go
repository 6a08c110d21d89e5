// Package params turns untrusted query-string style inputs into calculator
// inputs. Missing or unparseable values fall back to the configured defaults
// and values outside the configured ranges are reported as warnings. Whether
// the result is computable is left to the engines.
package params

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/iwvelando/bizcalc/internal/config"
	"github.com/iwvelando/bizcalc/pkg/finance"
	"github.com/iwvelando/bizcalc/pkg/loans"
	"github.com/iwvelando/bizcalc/pkg/validation"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Query keys accepted by each calculator.
const (
	KeyLoan  = "loan"
	KeyRate  = "rate"
	KeyYears = "years"

	KeyRevenue      = "revenue"
	KeyProfitMargin = "profitMargin"
	KeyGrowthRate   = "growthRate"
	KeyDiscountRate = "discountRate"

	KeyInitial = "initial"
	KeyFinal   = "final"

	KeyFixedCosts    = "fixedCosts"
	KeyVariableCosts = "variableCosts"
	KeySellingPrice  = "sellingPrice"

	KeyBasicSalary     = "basicSalary"
	KeyDA              = "da"
	KeyMonthlySalary   = "monthlySalary"
	KeyLastDrawnSalary = "lastDrawnSalary"
	KeyYearsOfService  = "yearsOfService"
)

// Parser reads calculator inputs using configured defaults and ranges.
type Parser struct {
	logger      *zap.Logger
	calculators config.Calculators
}

// NewParser creates a parser for the given calculator configuration.
func NewParser(logger *zap.Logger, calculators config.Calculators) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger, calculators: calculators}
}

// EMI reads the loan amount, rate and tenure.
func (p *Parser) EMI(values url.Values) (loans.Terms, []string) {
	r := p.reader("params.EMI", values)
	terms := loans.Terms{
		Principal:         r.float(KeyLoan, p.calculators.EMI.Loan),
		AnnualRatePercent: r.float(KeyRate, p.calculators.EMI.Rate),
		Years:             r.float(KeyYears, p.calculators.EMI.Years),
	}
	return terms, r.warnings
}

// Valuation reads the business valuation inputs.
func (p *Parser) Valuation(values url.Values) (finance.ValuationInputs, []string) {
	r := p.reader("params.Valuation", values)
	inputs := finance.ValuationInputs{
		AnnualRevenue:       r.float(KeyRevenue, p.calculators.Valuation.Revenue),
		ProfitMarginPercent: r.float(KeyProfitMargin, p.calculators.Valuation.ProfitMargin),
		GrowthRatePercent:   r.float(KeyGrowthRate, p.calculators.Valuation.GrowthRate),
		DiscountRatePercent: r.float(KeyDiscountRate, p.calculators.Valuation.DiscountRate),
	}
	return inputs, r.warnings
}

// ROI reads the investment amounts and holding period.
func (p *Parser) ROI(values url.Values) (finance.ROIInputs, []string) {
	r := p.reader("params.ROI", values)
	inputs := finance.ROIInputs{
		InitialInvestment: r.float(KeyInitial, p.calculators.ROI.Initial),
		FinalValue:        r.float(KeyFinal, p.calculators.ROI.Final),
		TimePeriodYears:   r.float(KeyYears, p.calculators.ROI.Years),
	}
	return inputs, r.warnings
}

// BreakEven reads the cost structure and selling price.
func (p *Parser) BreakEven(values url.Values) (finance.BreakEvenInputs, []string) {
	r := p.reader("params.BreakEven", values)
	inputs := finance.BreakEvenInputs{
		FixedCosts:          r.float(KeyFixedCosts, p.calculators.BreakEven.FixedCosts),
		VariableCostPerUnit: r.float(KeyVariableCosts, p.calculators.BreakEven.VariableCosts),
		SellingPricePerUnit: r.float(KeySellingPrice, p.calculators.BreakEven.SellingPrice),
	}
	return inputs, r.warnings
}

// Gratuity reads the salary and years of service. An explicit monthly (or
// last drawn) salary wins; otherwise the salary is basic plus dearness
// allowance.
func (p *Parser) Gratuity(values url.Values) (finance.GratuityInputs, []string) {
	r := p.reader("params.Gratuity", values)
	gratuity := p.calculators.Gratuity

	inputs := finance.GratuityInputs{
		YearsOfService: r.float(KeyYearsOfService, gratuity.YearsOfService),
	}

	key := ""
	for _, candidate := range []string{KeyMonthlySalary, KeyLastDrawnSalary} {
		if strings.TrimSpace(values.Get(candidate)) != "" {
			key = candidate
			break
		}
	}

	if key == "" {
		inputs.MonthlySalary = r.float(KeyBasicSalary, gratuity.BasicSalary) + r.float(KeyDA, gratuity.DA)
		return inputs, r.warnings
	}

	raw := strings.TrimSpace(values.Get(key))
	salary, err := cast.ToFloat64E(raw)
	if err != nil {
		// Fall back to basic plus DA, read only now that they are needed.
		fallback := r.float(KeyBasicSalary, gratuity.BasicSalary) + r.float(KeyDA, gratuity.DA)
		r.warn(fmt.Sprintf("%s: could not parse %q, using basic salary plus DA %g", key, raw, fallback), key)
		salary = fallback
	}
	inputs.MonthlySalary = salary
	return inputs, r.warnings
}

// reader accumulates the warnings raised while reading one set of values.
type reader struct {
	op       string
	logger   *zap.Logger
	values   url.Values
	warnings []string
}

func (p *Parser) reader(op string, values url.Values) *reader {
	return &reader{op: op, logger: p.logger, values: values}
}

func (r *reader) float(key string, param config.Param) float64 {
	raw := strings.TrimSpace(r.values.Get(key))
	if raw == "" {
		return param.Default
	}

	value, err := cast.ToFloat64E(raw)
	if err != nil {
		r.warn(fmt.Sprintf("%s: could not parse %q, using default %g", key, raw, param.Default), key)
		return param.Default
	}

	if warning := validation.ValidateRange(key, value, param.Min, param.Max); warning != "" {
		r.warn(warning, key)
	}
	return value
}

func (r *reader) warn(message, key string) {
	r.warnings = append(r.warnings, message)
	r.logger.Debug(message,
		zap.String("op", r.op),
		zap.String("key", key),
	)
}
