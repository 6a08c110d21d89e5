// Package config defines the data structures related to configuration and
// includes functions for loading it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for bizcalc.
type Configuration struct {
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
	Calculators Calculators   `yaml:"calculators,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format        string `yaml:"format,omitempty"` // pretty, csv, json, yaml
	ShowSchedule  bool   `yaml:"showSchedule,omitempty"`
	ChartInterval int    `yaml:"chartInterval,omitempty"` // months between trend samples
	Precision     int    `yaml:"precision,omitempty"`     // fraction digits for rates and multiples
}

// Param describes one calculator input: the fallback used when a caller
// supplies nothing usable, and the range the input widgets offer. A zero
// range disables range warnings.
type Param struct {
	Default float64 `yaml:"default"`
	Min     float64 `yaml:"min,omitempty"`
	Max     float64 `yaml:"max,omitempty"`
}

// Calculators holds the inputs of every calculator.
type Calculators struct {
	EMI       EMIConfig       `yaml:"emi"`
	Valuation ValuationConfig `yaml:"valuation"`
	ROI       ROIConfig       `yaml:"roi"`
	BreakEven BreakEvenConfig `yaml:"breakEven"`
	Gratuity  GratuityConfig  `yaml:"gratuity"`
}

// EMIConfig holds the EMI calculator inputs.
type EMIConfig struct {
	Loan  Param `yaml:"loan"`
	Rate  Param `yaml:"rate"`
	Years Param `yaml:"years"`
}

// ValuationConfig holds the business valuation inputs.
type ValuationConfig struct {
	Revenue      Param `yaml:"revenue"`
	ProfitMargin Param `yaml:"profitMargin"`
	GrowthRate   Param `yaml:"growthRate"`
	DiscountRate Param `yaml:"discountRate"`
}

// ROIConfig holds the ROI calculator inputs.
type ROIConfig struct {
	Initial Param `yaml:"initial"`
	Final   Param `yaml:"final"`
	Years   Param `yaml:"years"`
}

// BreakEvenConfig holds the break-even calculator inputs.
type BreakEvenConfig struct {
	FixedCosts    Param `yaml:"fixedCosts"`
	VariableCosts Param `yaml:"variableCosts"`
	SellingPrice  Param `yaml:"sellingPrice"`
}

// GratuityConfig holds the gratuity calculator inputs. The monthly salary
// defaults to basic salary plus dearness allowance.
type GratuityConfig struct {
	BasicSalary    Param `yaml:"basicSalary"`
	DA             Param `yaml:"da"`
	YearsOfService Param `yaml:"yearsOfService"`
}

// defaults lists every configuration default by viper key.
var defaults = map[string]interface{}{
	"logging.level":        "info",
	"logging.format":       "console",
	"output.format":        constants.OutputFormatPretty,
	"output.showschedule":  false,
	"output.chartinterval": constants.DefaultChartInterval,
	"output.precision":     constants.DefaultNumberPrecision,

	"calculators.emi.loan.default":  constants.DefaultLoanAmount,
	"calculators.emi.loan.min":      100000.0,
	"calculators.emi.loan.max":      10000000.0,
	"calculators.emi.rate.default":  constants.DefaultLoanRate,
	"calculators.emi.rate.min":      1.0,
	"calculators.emi.rate.max":      25.0,
	"calculators.emi.years.default": constants.DefaultLoanYears,
	"calculators.emi.years.min":     1.0,
	"calculators.emi.years.max":     30.0,

	"calculators.valuation.revenue.default":      constants.DefaultRevenue,
	"calculators.valuation.revenue.min":          100000.0,
	"calculators.valuation.revenue.max":          10000000.0,
	"calculators.valuation.profitmargin.default": constants.DefaultProfitMargin,
	"calculators.valuation.profitmargin.min":     1.0,
	"calculators.valuation.profitmargin.max":     50.0,
	"calculators.valuation.growthrate.default":   constants.DefaultGrowthRate,
	"calculators.valuation.growthrate.min":       0.0,
	"calculators.valuation.growthrate.max":       50.0,
	"calculators.valuation.discountrate.default": constants.DefaultDiscountRate,
	"calculators.valuation.discountrate.min":     5.0,
	"calculators.valuation.discountrate.max":     30.0,

	"calculators.roi.initial.default": constants.DefaultInitialInvest,
	"calculators.roi.initial.min":     1000.0,
	"calculators.roi.initial.max":     10000000.0,
	"calculators.roi.final.default":   constants.DefaultFinalValue,
	"calculators.roi.final.min":       1000.0,
	"calculators.roi.final.max":       10000000.0,
	"calculators.roi.years.default":   constants.DefaultInvestYears,
	"calculators.roi.years.min":       0.25,
	"calculators.roi.years.max":       20.0,

	"calculators.breakeven.fixedcosts.default":    constants.DefaultFixedCosts,
	"calculators.breakeven.fixedcosts.min":        1000.0,
	"calculators.breakeven.fixedcosts.max":        1000000.0,
	"calculators.breakeven.variablecosts.default": constants.DefaultVariableCosts,
	"calculators.breakeven.variablecosts.min":     1.0,
	"calculators.breakeven.variablecosts.max":     1000.0,
	"calculators.breakeven.sellingprice.default":  constants.DefaultSellingPrice,
	"calculators.breakeven.sellingprice.min":      1.0,
	"calculators.breakeven.sellingprice.max":      2000.0,

	"calculators.gratuity.basicsalary.default":    constants.DefaultBasicSalary,
	"calculators.gratuity.da.default":             constants.DefaultDearnessAllow,
	"calculators.gratuity.yearsofservice.default": constants.DefaultYearsOfService,
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the configuration used when no file is supplied.
func Default() (*Configuration, error) {
	return decode(newViper())
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if configPath == "" {
		return Default()
	}

	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from an arbitrary
// reader.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the settings that would otherwise fail later at render
// time.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output configuration: %w", err)
	}
	if c.Output.ChartInterval <= 0 {
		return fmt.Errorf("invalid output configuration: chartInterval must be positive, got %d", c.Output.ChartInterval)
	}
	if c.Output.Precision < 0 || c.Output.Precision > constants.MaxFractionDigits {
		return fmt.Errorf("invalid output configuration: precision must be between 0 and %d, got %d",
			constants.MaxFractionDigits, c.Output.Precision)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for defaults that fall outside their own ranges.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	for name, param := range c.Calculators.params() {
		if param.Min > param.Max {
			warnings = append(warnings, fmt.Sprintf("%s has min %g above max %g", name, param.Min, param.Max))
			continue
		}
		if warning := validation.ValidateRange(name+" default", param.Default, param.Min, param.Max); warning != "" {
			warnings = append(warnings, warning)
		}
	}
	return warnings
}

func (c Calculators) params() map[string]Param {
	return map[string]Param{
		"emi.loan":                c.EMI.Loan,
		"emi.rate":                c.EMI.Rate,
		"emi.years":               c.EMI.Years,
		"valuation.revenue":       c.Valuation.Revenue,
		"valuation.profitMargin":  c.Valuation.ProfitMargin,
		"valuation.growthRate":    c.Valuation.GrowthRate,
		"valuation.discountRate":  c.Valuation.DiscountRate,
		"roi.initial":             c.ROI.Initial,
		"roi.final":               c.ROI.Final,
		"roi.years":               c.ROI.Years,
		"breakEven.fixedCosts":    c.BreakEven.FixedCosts,
		"breakEven.variableCosts": c.BreakEven.VariableCosts,
		"breakEven.sellingPrice":  c.BreakEven.SellingPrice,
		"gratuity.basicSalary":    c.Gratuity.BasicSalary,
		"gratuity.da":             c.Gratuity.DA,
		"gratuity.yearsOfService": c.Gratuity.YearsOfService,
	}
}
