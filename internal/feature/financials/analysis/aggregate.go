package analysis

import "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"

// SumYear adds field over every row of year. A missing field counts as zero
// here, so a year without rows sums to 0.
func SumYear(rows []entity.PeriodRow, year int, field string) float64 {
	var sum float64
	for _, r := range rows {
		if r.Year != year {
			continue
		}
		if v, ok := r.Value(field); ok {
			sum += v
		}
	}
	return sum
}

// ValueAt looks up field for one exact period. ok is false when the period is
// absent or the row does not carry the field.
func ValueAt(rows []entity.PeriodRow, year, quarter int, field string) (float64, bool) {
	row, found := NewPeriodIndex(rows).QuarterRow(year, quarter)
	if !found {
		return 0, false
	}
	return row.Value(field)
}
