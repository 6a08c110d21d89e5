package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/iwvelando/bizcalc/internal/calculator"
	"github.com/iwvelando/bizcalc/internal/config"
	"github.com/iwvelando/bizcalc/internal/logging"
	"github.com/iwvelando/bizcalc/internal/params"
	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/output"
	"github.com/iwvelando/bizcalc/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath   string
	logLevel     string
	outputFormat string
	query        string
	showSchedule bool
}

// calculatorKeys lists the query keys each calculator subcommand exposes as
// flags.
var calculatorKeys = map[string][]string{
	calculator.NameEMI:       {params.KeyLoan, params.KeyRate, params.KeyYears},
	calculator.NameValuation: {params.KeyRevenue, params.KeyProfitMargin, params.KeyGrowthRate, params.KeyDiscountRate},
	calculator.NameROI:       {params.KeyInitial, params.KeyFinal, params.KeyYears},
	calculator.NameBreakEven: {params.KeyFixedCosts, params.KeyVariableCosts, params.KeySellingPrice},
	calculator.NameGratuity:  {params.KeyBasicSalary, params.KeyDA, params.KeyMonthlySalary, params.KeyLastDrawnSalary, params.KeyYearsOfService},
}

var calculatorDescriptions = map[string]string{
	calculator.NameEMI:       "Calculate the monthly EMI and amortization schedule of a loan",
	calculator.NameValuation: "Estimate a business valuation from revenue, margin and growth",
	calculator.NameROI:       "Calculate the total and annualized return on an investment",
	calculator.NameBreakEven: "Find the break-even units and revenue",
	calculator.NameGratuity:  "Calculate statutory gratuity from salary and years of service",
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bizcalc",
		Short: "Business and personal finance calculators",
		Long: `bizcalc runs the EMI, business valuation, ROI, break-even and gratuity
calculators. Inputs come from flags or a URL query string (--query); anything
missing falls back to the configured defaults.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json, yaml")
	flags.StringVar(&opts.query, "query", "", "calculator inputs as a URL query string, e.g. loan=500000&rate=9")
	flags.BoolVar(&opts.showSchedule, "show-schedule", false, "include the full month-by-month amortization schedule")

	for _, name := range calculator.Names {
		root.AddCommand(newCalculatorCmd(opts, name))
	}
	root.AddCommand(newReportCmd(opts), newVersionCmd())
	return root
}

func newCalculatorCmd(opts *options, name string) *cobra.Command {
	inputs := map[string]*string{}
	cmd := &cobra.Command{
		Use:   name,
		Short: calculatorDescriptions[name],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := collectValues(cmd, opts.query, inputs)
			if err != nil {
				return err
			}
			return run(cmd, opts, func(service *calculator.Service, logger *zap.Logger) ([]output.Document, error) {
				doc, warnings, err := service.Document(name, values)
				logWarnings(logger, "main."+name, warnings)
				if err != nil {
					return nil, err
				}
				return []output.Document{doc}, nil
			})
		},
	}
	for _, key := range calculatorKeys[name] {
		inputs[key] = cmd.Flags().String(key, "", fmt.Sprintf("%s input (blank uses the configured default)", key))
	}
	return cmd
}

func newReportCmd(opts *options) *cobra.Command {
	inputs := map[string]*string{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run every calculator against the same inputs",
		Long: `Run every calculator concurrently against the same inputs. The "years"
input is shared by the EMI and ROI calculators.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := collectValues(cmd, opts.query, inputs)
			if err != nil {
				return err
			}
			return run(cmd, opts, func(service *calculator.Service, logger *zap.Logger) ([]output.Document, error) {
				docs, warnings, err := service.Report(context.Background(), values)
				logWarnings(logger, "main.report", warnings)
				return docs, err
			})
		},
	}
	for _, name := range calculator.Names {
		for _, key := range calculatorKeys[name] {
			if _, ok := inputs[key]; !ok {
				inputs[key] = cmd.Flags().String(key, "", fmt.Sprintf("%s input (blank uses the configured default)", key))
			}
		}
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "bizcalc %s\n", version)
			return err
		},
	}
}

// collectValues merges the --query string with explicitly set input flags.
// Flags win over the query string.
func collectValues(cmd *cobra.Command, query string, inputs map[string]*string) (url.Values, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	for key, value := range inputs {
		if cmd.Flags().Changed(key) {
			values.Set(key, *value)
		}
	}
	return values, nil
}

type computeFunc func(service *calculator.Service, logger *zap.Logger) ([]output.Document, error)

// run loads configuration, builds the logger and service, computes the
// documents and writes them in the selected output format.
func run(cmd *cobra.Command, opts *options, compute computeFunc) error {
	conf, err := loadConfiguration(cmd, opts.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("show-schedule") {
		conf.Output.ShowSchedule = opts.showSchedule
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	logger, err := logging.New(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	service, err := calculator.NewService(logger, conf)
	if err != nil {
		return err
	}

	docs, err := compute(service, logger)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidInput) {
			return fmt.Errorf("invalid input: %w", err)
		}
		return err
	}
	return output.Write(cmd.OutOrStdout(), outputFormat, docs...)
}

// loadConfiguration reads the configuration file. A missing default file is
// not an error; a missing file named with --config is.
func loadConfiguration(cmd *cobra.Command, path string) (*config.Configuration, error) {
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config.Default()
		}
	}
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}

func logWarnings(logger *zap.Logger, op string, warnings []string) {
	for _, warning := range warnings {
		logger.Warn("Input warning: "+warning,
			zap.String("op", op),
		)
	}
}
