package loans

import "github.com/iwvelando/bizcalc/pkg/constants"

// YearSummary rolls a year of schedule entries into totals.
type YearSummary struct {
	Year           int     `json:"year" yaml:"year"`
	Principal      float64 `json:"principal" yaml:"principal"`
	Interest       float64 `json:"interest" yaml:"interest"`
	ClosingBalance float64 `json:"closingBalance" yaml:"closingBalance"`
}

// YearlySummary groups the schedule into loan years (months 1-12 are year 1).
// A trailing partial year gets its own row.
func YearlySummary(schedule []Entry) []YearSummary {
	if len(schedule) == 0 {
		return nil
	}

	years := make([]YearSummary, 0, (len(schedule)+constants.MonthsPerYear-1)/constants.MonthsPerYear)
	for _, entry := range schedule {
		year := (entry.Month-1)/constants.MonthsPerYear + 1
		if len(years) == 0 || years[len(years)-1].Year != year {
			years = append(years, YearSummary{Year: year})
		}
		current := &years[len(years)-1]
		current.Principal += entry.PrincipalPortion
		current.Interest += entry.InterestPortion
		current.ClosingBalance = entry.RemainingBalance
	}
	return years
}
