package usecase

import "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"

// YearPeriods lists the quarters reported for one year.
type YearPeriods struct {
	Year          int
	Quarters      []int
	LatestQuarter int // 0 when the year has no valid quarter
}

// PeriodsView drives the year and quarter pickers.
type PeriodsView struct {
	Symbol string
	Kind   entity.StatementKind
	Years  []YearPeriods // most recent first
}

// SummaryQuery selects the lines of a statement summary.
// Nil Year/Quarter and empty Fields fall back to defaults.
type SummaryQuery struct {
	Symbol  string
	Kind    entity.StatementKind
	Year    *int
	Quarter *int
	Fields  []string
	Locale  string
}

// SummaryLine is one line item with its computed and formatted values.
type SummaryLine struct {
	Field   string
	Label   string
	Section string

	Annual     float64
	Quarter    *float64
	YoYAnnual  *float64
	YoYQuarter *float64

	AnnualText     string
	AnnualScaled   string
	QuarterText    string
	YoYAnnualText  string
	YoYQuarterText string

	AnnualClass     string
	QuarterClass    string
	YoYAnnualClass  string
	YoYQuarterClass string
}

// Summary is the statement table for one selected period.
type Summary struct {
	Symbol  string
	Kind    entity.StatementKind
	Year    int
	Quarter int // 0 when the selected year has no quarter rows
	Years   []int
	Lines   []SummaryLine
}

// RatioLine is one formatted ratio of the selected entry.
type RatioLine struct {
	Field   string
	Label   string
	Section string
	Value   *float64
	Text    string
	Class   string
}

// RatioView is the ratio table after reconciling the requested selection.
type RatioView struct {
	Symbol    string
	Selection entity.PeriodSelection
	Entry     entity.RatioEntry
	Periods   []YearPeriods
	Lines     []RatioLine
}
