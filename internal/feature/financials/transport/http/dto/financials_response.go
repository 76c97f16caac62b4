// Package dto holds the JSON shapes of the financials endpoints.
package dto

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// PeriodRowResponse is one period of a statement.
type PeriodRowResponse struct {
	Year    int                `json:"year"`
	Quarter int                `json:"quarter"`
	Fields  map[string]float64 `json:"fields"`
}

// StatementResponse is the raw statement table.
type StatementResponse struct {
	Symbol string              `json:"symbol"`
	Kind   string              `json:"kind"`
	Rows   []PeriodRowResponse `json:"rows"`
}

// YearPeriodsResponse lists the quarters of one year.
type YearPeriodsResponse struct {
	Year          int   `json:"year"`
	Quarters      []int `json:"quarters"`
	LatestQuarter int   `json:"latestQuarter,omitempty"`
}

// PeriodsResponse drives the period pickers.
type PeriodsResponse struct {
	Symbol string                `json:"symbol"`
	Kind   string                `json:"kind"`
	Years  []YearPeriodsResponse `json:"years"`
}

// SummaryLineResponse is one formatted line item.
type SummaryLineResponse struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Section string `json:"section,omitempty"`

	Annual     float64  `json:"annual"`
	Quarter    *float64 `json:"quarter"`
	YoYAnnual  *float64 `json:"yoyAnnual"`
	YoYQuarter *float64 `json:"yoyQuarter"`

	AnnualText     string `json:"annualText"`
	AnnualScaled   string `json:"annualScaled"`
	QuarterText    string `json:"quarterText"`
	YoYAnnualText  string `json:"yoyAnnualText"`
	YoYQuarterText string `json:"yoyQuarterText"`

	AnnualClass     string `json:"annualClass"`
	QuarterClass    string `json:"quarterClass"`
	YoYAnnualClass  string `json:"yoyAnnualClass"`
	YoYQuarterClass string `json:"yoyQuarterClass"`
}

// SummaryResponse is the statement table for the selected period.
type SummaryResponse struct {
	Symbol  string                `json:"symbol"`
	Kind    string                `json:"kind"`
	Year    int                   `json:"year"`
	Quarter int                   `json:"quarter,omitempty"`
	Years   []int                 `json:"years"`
	Lines   []SummaryLineResponse `json:"lines"`
}

// SymbolInfoResponse is the symbol attached to a ratio entry.
type SymbolInfoResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// RatioLineResponse is one formatted ratio.
type RatioLineResponse struct {
	Field   string   `json:"field"`
	Label   string   `json:"label"`
	Section string   `json:"section,omitempty"`
	Value   *float64 `json:"value"`
	Text    string   `json:"text"`
	Class   string   `json:"class"`
}

// RatiosResponse is the reconciled ratio table.
type RatiosResponse struct {
	Symbol  string                `json:"symbol"`
	Year    int                   `json:"year"`
	Quarter int                   `json:"quarter"`
	Company SymbolInfoResponse    `json:"company"`
	Periods []YearPeriodsResponse `json:"periods"`
	Lines   []RatioLineResponse   `json:"lines"`
}

// RefreshResponse reports one ingestion run.
type RefreshResponse struct {
	Symbol     string         `json:"symbol"`
	Generation uint64         `json:"generation"`
	Rows       map[string]int `json:"rows"`
	Ratios     int            `json:"ratios"`
	Stale      bool           `json:"stale"`
}
