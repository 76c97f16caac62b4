package analysis

import (
	"sort"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
)

// PeriodIndex answers period lookups over a fixed set of rows.
type PeriodIndex struct {
	rows []entity.PeriodRow
}

// NewPeriodIndex indexes rows. The slice is not copied and must not be
// modified afterwards.
func NewPeriodIndex(rows []entity.PeriodRow) PeriodIndex {
	return PeriodIndex{rows: rows}
}

// YearsDescending returns the distinct years, most recent first.
func (p PeriodIndex) YearsDescending() []int {
	seen := make(map[int]struct{}, len(p.rows))
	years := make([]int, 0, len(p.rows))
	for _, r := range p.rows {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// QuarterRow returns the first row for (year, quarter).
func (p PeriodIndex) QuarterRow(year, quarter int) (entity.PeriodRow, bool) {
	for _, r := range p.rows {
		if r.Year == year && r.Quarter == quarter {
			return r, true
		}
	}
	return entity.PeriodRow{}, false
}

// LatestQuarterOfYear returns the highest valid quarter reported for year.
func (p PeriodIndex) LatestQuarterOfYear(year int) (int, bool) {
	latest := 0
	for _, r := range p.rows {
		if r.Year != year || r.Quarter < 1 || r.Quarter > 4 {
			continue
		}
		if r.Quarter > latest {
			latest = r.Quarter
		}
	}
	if latest == 0 {
		return 0, false
	}
	return latest, true
}

// QuartersOfYear returns the valid quarters reported for year, ascending.
func (p PeriodIndex) QuartersOfYear(year int) []int {
	var seen [5]bool
	out := make([]int, 0, 4)
	for _, r := range p.rows {
		if r.Year == year && r.Quarter >= 1 && r.Quarter <= 4 && !seen[r.Quarter] {
			seen[r.Quarter] = true
			out = append(out, r.Quarter)
		}
	}
	sort.Ints(out)
	return out
}

// LatestPeriod returns the most recent (year, quarter) present.
func (p PeriodIndex) LatestPeriod() (int, int, bool) {
	years := p.YearsDescending()
	for _, y := range years {
		if q, ok := p.LatestQuarterOfYear(y); ok {
			return y, q, true
		}
	}
	return 0, 0, false
}
