package output

import (
	"github.com/iwvelando/bizcalc/pkg/constants"
	"github.com/iwvelando/bizcalc/pkg/loans"
)

// SeriesPoint is one sample of the amortization trend chart.
type SeriesPoint struct {
	Month     int     `json:"month" yaml:"month"`
	Principal float64 `json:"principal" yaml:"principal"`
	Interest  float64 `json:"interest" yaml:"interest"`
	Balance   float64 `json:"balance" yaml:"balance"`
}

// Slice is one segment of a share-of-total chart.
type Slice struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Share float64 `json:"share" yaml:"share"` // percent of the total
}

// AmortizationSeries samples every interval-th month of the schedule,
// starting with month 1, and always includes the final month. A non-positive
// interval falls back to the default sampling.
func AmortizationSeries(schedule []loans.Entry, interval int) []SeriesPoint {
	if interval <= 0 {
		interval = constants.DefaultChartInterval
	}

	points := make([]SeriesPoint, 0, len(schedule)/interval+2)
	for i, entry := range schedule {
		if i%interval != 0 && i != len(schedule)-1 {
			continue
		}
		points = append(points, SeriesPoint{
			Month:     entry.Month,
			Principal: entry.PrincipalPortion,
			Interest:  entry.InterestPortion,
			Balance:   entry.RemainingBalance,
		})
	}
	return points
}

// PaymentBreakdown splits the total repaid into principal and interest.
func PaymentBreakdown(result loans.EMIResult) []Slice {
	total := result.Principal + result.TotalInterest
	share := func(v float64) float64 {
		if total == 0 {
			return 0
		}
		return v / total * constants.PercentageMultiplier
	}

	return []Slice{
		{Name: "Principal", Value: result.Principal, Share: share(result.Principal)},
		{Name: "Interest", Value: result.TotalInterest, Share: share(result.TotalInterest)},
	}
}
