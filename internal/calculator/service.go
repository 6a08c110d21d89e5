// Package calculator wires input parsing, the calculation engines and the
// document builders together.
package calculator

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/iwvelando/bizcalc/internal/config"
	"github.com/iwvelando/bizcalc/internal/params"
	"github.com/iwvelando/bizcalc/pkg/finance"
	"github.com/iwvelando/bizcalc/pkg/loans"
	"github.com/iwvelando/bizcalc/pkg/output"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Calculator names.
const (
	NameEMI       = "emi"
	NameValuation = "valuation"
	NameROI       = "roi"
	NameBreakEven = "breakeven"
	NameGratuity  = "gratuity"
)

// Names lists every calculator in report order.
var Names = []string{NameEMI, NameValuation, NameROI, NameBreakEven, NameGratuity}

// Service runs calculators against untrusted inputs.
type Service struct {
	logger    *zap.Logger
	config    *config.Configuration
	parser    *params.Parser
	generator *loans.ScheduleGenerator
}

// NewService creates a service. A nil configuration uses the defaults.
func NewService(logger *zap.Logger, conf *config.Configuration) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		var err error
		conf, err = config.Default()
		if err != nil {
			return nil, err
		}
	}
	return &Service{
		logger:    logger,
		config:    conf,
		parser:    params.NewParser(logger, conf.Calculators),
		generator: loans.NewScheduleGenerator(logger),
	}, nil
}

// Options returns the document options derived from the output configuration.
func (s *Service) Options() output.Options {
	return output.Options{
		ShowSchedule:  s.config.Output.ShowSchedule,
		ChartInterval: s.config.Output.ChartInterval,
		Precision:     s.config.Output.Precision,
	}
}

// EMI computes the loan installment and amortization schedule.
func (s *Service) EMI(values url.Values) (loans.EMIResult, []string, error) {
	terms, warnings := s.parser.EMI(values)
	result, err := s.generator.Compute(terms)
	return result, warnings, s.check("calculator.EMI", err)
}

// Valuation computes the business valuation.
func (s *Service) Valuation(values url.Values) (finance.ValuationResult, []string, error) {
	inputs, warnings := s.parser.Valuation(values)
	result, err := inputs.Compute()
	return result, warnings, s.check("calculator.Valuation", err)
}

// ROI computes the total and annualized return.
func (s *Service) ROI(values url.Values) (finance.ROIResult, []string, error) {
	inputs, warnings := s.parser.ROI(values)
	result, err := inputs.Compute()
	return result, warnings, s.check("calculator.ROI", err)
}

// BreakEven computes the break-even point.
func (s *Service) BreakEven(values url.Values) (finance.BreakEvenResult, []string, error) {
	inputs, warnings := s.parser.BreakEven(values)
	result, err := inputs.Compute()
	return result, warnings, s.check("calculator.BreakEven", err)
}

// Gratuity computes the statutory gratuity.
func (s *Service) Gratuity(values url.Values) (finance.GratuityResult, []string, error) {
	inputs, warnings := s.parser.Gratuity(values)
	result, err := inputs.Compute()
	return result, warnings, s.check("calculator.Gratuity", err)
}

// Document runs the named calculator and prepares its result for display.
func (s *Service) Document(name string, values url.Values) (output.Document, []string, error) {
	opts := s.Options()
	switch strings.ToLower(name) {
	case NameEMI:
		result, warnings, err := s.EMI(values)
		if err != nil {
			return output.Document{}, warnings, err
		}
		doc, err := output.EMIDocument(result, opts)
		return doc, warnings, err
	case NameValuation:
		result, warnings, err := s.Valuation(values)
		if err != nil {
			return output.Document{}, warnings, err
		}
		doc, err := output.ValuationDocument(result, opts)
		return doc, warnings, err
	case NameROI:
		result, warnings, err := s.ROI(values)
		if err != nil {
			return output.Document{}, warnings, err
		}
		doc, err := output.ROIDocument(result, opts)
		return doc, warnings, err
	case NameBreakEven:
		result, warnings, err := s.BreakEven(values)
		if err != nil {
			return output.Document{}, warnings, err
		}
		doc, err := output.BreakEvenDocument(result, opts)
		return doc, warnings, err
	case NameGratuity:
		result, warnings, err := s.Gratuity(values)
		if err != nil {
			return output.Document{}, warnings, err
		}
		doc, err := output.GratuityDocument(result, opts)
		return doc, warnings, err
	default:
		return output.Document{}, nil, fmt.Errorf("unknown calculator %q, expected one of %s", name, strings.Join(Names, ", "))
	}
}

// Report runs every calculator against the same values concurrently. The
// documents and warnings come back in Names order. The first calculator to
// fail cancels the rest.
func (s *Service) Report(ctx context.Context, values url.Values) ([]output.Document, []string, error) {
	docs := make([]output.Document, len(Names))
	warnings := make([][]string, len(Names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range Names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, w, err := s.Document(name, values)
			if err != nil {
				return fmt.Errorf("%s calculator: %w", name, err)
			}
			docs[i] = doc
			for _, warning := range w {
				warnings[i] = append(warnings[i], name+": "+warning)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var combined []string
	for _, w := range warnings {
		combined = append(combined, w...)
	}
	s.logger.Debug(fmt.Sprintf("computed report of %d calculators", len(docs)),
		zap.String("op", "calculator.Report"),
		zap.Int("warnings", len(combined)),
	)
	return docs, combined, nil
}

func (s *Service) check(op string, err error) error {
	if err != nil {
		s.logger.Debug("calculation rejected",
			zap.String("op", op),
			zap.Error(err),
		)
	}
	return err
}
