package analysis

import (
	"fmt"
	"math"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
)

// YoYMode selects how the year-over-year change is measured.
type YoYMode string

const (
	// ModeAnnual compares the sum of a year with the sum of the year before.
	ModeAnnual YoYMode = "annual"
	// ModeQuarterLatest compares the latest quarter of a year with the same
	// quarter one year earlier.
	ModeQuarterLatest YoYMode = "quarter-latest"
)

// ParseYoYMode validates a mode string; empty means annual.
func ParseYoYMode(s string) (YoYMode, error) {
	switch YoYMode(s) {
	case "", ModeAnnual:
		return ModeAnnual, nil
	case ModeQuarterLatest:
		return ModeQuarterLatest, nil
	}
	return "", fmt.Errorf("unknown yoy mode %q", s)
}

// YoY returns the percentage change of field for year, or nil when there is
// nothing meaningful to compare against (missing or zero prior value).
func YoY(rows []entity.PeriodRow, year int, field string, mode YoYMode) *float64 {
	switch mode {
	case ModeQuarterLatest:
		return yoyQuarterLatest(rows, year, field)
	default:
		return yoyAnnual(rows, year, field)
	}
}

func yoyAnnual(rows []entity.PeriodRow, year int, field string) *float64 {
	cur := SumYear(rows, year, field)
	prev := SumYear(rows, year-1, field)
	return change(cur, prev)
}

func yoyQuarterLatest(rows []entity.PeriodRow, year int, field string) *float64 {
	q, ok := NewPeriodIndex(rows).LatestQuarterOfYear(year)
	if !ok {
		return nil
	}
	cur, ok := ValueAt(rows, year, q, field)
	if !ok {
		return nil
	}
	prev, ok := ValueAt(rows, year-1, q, field)
	if !ok {
		return nil
	}
	return change(cur, prev)
}

func change(cur, prev float64) *float64 {
	if prev == 0 || math.IsNaN(prev) || math.IsInf(prev, 0) {
		return nil
	}
	pct := (cur - prev) / math.Abs(prev) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return nil
	}
	return &pct
}
