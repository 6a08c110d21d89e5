package output

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/finance"
	"github.com/iwvelando/bizcalc/pkg/format"
	"github.com/iwvelando/bizcalc/pkg/loans"
)

// Field is a labelled, already formatted value.
type Field struct {
	Label string
	Value string
}

// Section groups related fields under a title.
type Section struct {
	Title  string
	Fields []Field
}

// Table is a titled grid of formatted cells.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Document is a calculator result prepared for display. Sections and Tables
// feed the pretty and CSV renderers; Data is what JSON and YAML serialize.
type Document struct {
	Name     string
	Sections []Section
	Tables   []Table
	Data     interface{}
}

// Options controls what a document includes.
type Options struct {
	// ShowSchedule adds the full month-by-month amortization table.
	ShowSchedule bool
	// ChartInterval is the month spacing of the amortization trend samples.
	ChartInterval int
	// Precision is the number of fraction digits for rates and multiples.
	Precision int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		ChartInterval: constants.DefaultChartInterval,
		Precision:     constants.DefaultNumberPrecision,
	}
}

// EMIData is the serialized form of an EMI document.
type EMIData struct {
	loans.EMIResult `yaml:",inline"`
	Yearly          []loans.YearSummary `json:"yearly" yaml:"yearly"`
	Trend           []SeriesPoint       `json:"trend" yaml:"trend"`
	Breakdown       []Slice             `json:"breakdown" yaml:"breakdown"`
}

// formatter collects the first formatting error so document builders can
// stay linear.
type formatter struct {
	precision int
	err       error
}

func (f *formatter) currency(v float64) string {
	s, err := format.Currency(v)
	f.keep(err)
	return s
}

func (f *formatter) number(v float64) string {
	s, err := format.Number(v, f.precision)
	f.keep(err)
	return s
}

func (f *formatter) percent(v float64) string {
	s, err := format.Percent(v, f.precision)
	f.keep(err)
	return s
}

func (f *formatter) keep(err error) {
	if err != nil && f.err == nil {
		f.err = err
	}
}

// EMIDocument prepares an EMI result, its yearly roll-up and chart data.
func EMIDocument(result loans.EMIResult, opts Options) (Document, error) {
	f := &formatter{precision: opts.Precision}
	breakdown := PaymentBreakdown(result)
	yearly := loans.YearlySummary(result.Schedule)
	trend := AmortizationSeries(result.Schedule, opts.ChartInterval)

	doc := Document{
		Name: "EMI",
		Sections: []Section{
			{
				Title: "Loan Summary",
				Fields: []Field{
					{"Loan Amount", f.currency(result.Principal)},
					{"Interest Rate", f.percent(result.AnnualRatePercent)},
					{"Loan Tenure", fmt.Sprintf("%s years (%d months)", f.number(result.Years), result.Months)},
					{"Monthly EMI", f.currency(result.Installment)},
					{"Total Interest", f.currency(result.TotalInterest)},
					{"Total Payment", f.currency(result.TotalPayment)},
				},
			},
			{
				Title: "Payment Breakdown",
				Fields: []Field{
					{breakdown[0].Name, f.percent(breakdown[0].Share)},
					{breakdown[1].Name, f.percent(breakdown[1].Share)},
				},
			},
		},
		Data: EMIData{EMIResult: result, Yearly: yearly, Trend: trend, Breakdown: breakdown},
	}

	yearTable := Table{Title: "Yearly Summary", Header: []string{"Year", "Principal", "Interest", "Balance"}}
	for _, y := range yearly {
		yearTable.Rows = append(yearTable.Rows, []string{
			strconv.Itoa(y.Year), f.currency(y.Principal), f.currency(y.Interest), f.currency(y.ClosingBalance),
		})
	}
	doc.Tables = append(doc.Tables, yearTable)

	trendTable := Table{
		Title:  fmt.Sprintf("Amortization Trend (every %d months)", trendInterval(opts.ChartInterval)),
		Header: []string{"Month", "Principal", "Interest", "Balance"},
	}
	for _, p := range trend {
		trendTable.Rows = append(trendTable.Rows, []string{
			strconv.Itoa(p.Month), f.currency(p.Principal), f.currency(p.Interest), f.currency(p.Balance),
		})
	}
	doc.Tables = append(doc.Tables, trendTable)

	if opts.ShowSchedule {
		schedule := Table{Title: "Amortization Schedule", Header: []string{"Month", "EMI", "Principal", "Interest", "Balance"}}
		for _, e := range result.Schedule {
			schedule.Rows = append(schedule.Rows, []string{
				strconv.Itoa(e.Month), f.currency(e.Installment), f.currency(e.PrincipalPortion),
				f.currency(e.InterestPortion), f.currency(e.RemainingBalance),
			})
		}
		doc.Tables = append(doc.Tables, schedule)
	}

	return doc, f.err
}

func trendInterval(interval int) int {
	if interval <= 0 {
		return constants.DefaultChartInterval
	}
	return interval
}

// ValuationDocument prepares a business valuation result.
func ValuationDocument(result finance.ValuationResult, opts Options) (Document, error) {
	f := &formatter{precision: opts.Precision}
	doc := Document{
		Name: "Business Valuation",
		Sections: []Section{
			{
				Title: "Inputs",
				Fields: []Field{
					{"Annual Revenue", f.currency(result.AnnualRevenue)},
					{"Profit Margin", f.percent(result.ProfitMarginPercent)},
					{"Growth Rate", f.percent(result.GrowthRatePercent)},
					{"Discount Rate", f.percent(result.DiscountRatePercent)},
				},
			},
			{
				Title: "Valuation",
				Fields: []Field{
					{"Current Profit", f.currency(result.Profit)},
					{"Projected Profit", f.currency(result.ProjectedProfit)},
					{"Business Valuation", f.currency(result.Valuation)},
					{"Revenue Multiple", f.number(result.RevenueMultiple) + "x"},
					{"Profit Multiple", f.number(result.ProfitMultiple) + "x"},
				},
			},
		},
		Data: result,
	}
	return doc, f.err
}

// ROIDocument prepares a return on investment result.
func ROIDocument(result finance.ROIResult, opts Options) (Document, error) {
	f := &formatter{precision: opts.Precision}
	doc := Document{
		Name: "ROI",
		Sections: []Section{
			{
				Title: "Return on Investment",
				Fields: []Field{
					{"Initial Investment", f.currency(result.InitialInvestment)},
					{"Final Value", f.currency(result.FinalValue)},
					{"Time Period", f.number(result.TimePeriodYears) + " years"},
					{"Total Gain", f.currency(result.TotalGainAmount)},
					{"Total ROI", f.percent(result.TotalGainPercent)},
					{"Annualized Return", f.percent(result.AnnualizedReturnPercent)},
				},
			},
		},
		Data: result,
	}
	return doc, f.err
}

// BreakEvenDocument prepares a break-even result.
func BreakEvenDocument(result finance.BreakEvenResult, opts Options) (Document, error) {
	f := &formatter{precision: opts.Precision}
	doc := Document{
		Name: "Break-Even Analysis",
		Sections: []Section{
			{
				Title: "Break-Even Point",
				Fields: []Field{
					{"Fixed Costs", f.currency(result.FixedCosts)},
					{"Variable Cost per Unit", f.currency(result.VariableCostPerUnit)},
					{"Selling Price per Unit", f.currency(result.SellingPricePerUnit)},
					{"Contribution Margin", f.currency(result.ContributionMargin)},
					{"Break-Even Units", f.number(result.BreakEvenUnits)},
					{"Break-Even Revenue", f.currency(result.BreakEvenRevenue)},
				},
			},
		},
		Data: result,
	}
	return doc, f.err
}

// GratuityDocument prepares a gratuity result.
func GratuityDocument(result finance.GratuityResult, opts Options) (Document, error) {
	f := &formatter{precision: opts.Precision}
	capped := "no"
	if result.Capped {
		capped = "yes"
	}
	doc := Document{
		Name: "Gratuity",
		Sections: []Section{
			{
				Title: "Gratuity Summary",
				Fields: []Field{
					{"Monthly Salary", f.currency(result.MonthlySalary)},
					{"Years of Service", f.number(result.YearsOfService) + " years"},
					{"Gratuity per Year", f.currency(result.GratuityPerYear)},
					{"Maximum Limit", f.currency(result.MaximumGratuity)},
					{"Capped", capped},
					{"Total Gratuity Amount", f.currency(result.Gratuity)},
				},
			},
			{
				Title:  "Formula",
				Fields: []Field{{"Formula", result.Formula}},
			},
		},
		Data: result,
	}
	return doc, f.err
}
