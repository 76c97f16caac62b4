package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
)

// scenarioRows is the two-year fixture used across the aggregation tests.
func scenarioRows() []entity.PeriodRow {
	return []entity.PeriodRow{
		{Year: 2023, Quarter: 1, Fields: map[string]float64{"f": 50}},
		{Year: 2023, Quarter: 2, Fields: map[string]float64{"f": 150}},
		{Year: 2024, Quarter: 1, Fields: map[string]float64{"f": 100}},
		{Year: 2024, Quarter: 2, Fields: map[string]float64{"f": 200}},
	}
}

func TestSumYear(t *testing.T) {
	t.Parallel()

	rows := append(scenarioRows(), entity.PeriodRow{Year: 2022, Quarter: 1, Fields: map[string]float64{"g": 1}})

	tests := []struct {
		name  string
		year  int
		field string
		want  float64
	}{
		{name: "sums all quarters of 2024", year: 2024, field: "f", want: 300},
		{name: "sums all quarters of 2023", year: 2023, field: "f", want: 200},
		{name: "year without rows is zero", year: 2019, field: "f", want: 0},
		{name: "rows missing the field count as zero", year: 2022, field: "f", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SumYear(rows, tt.year, tt.field))
		})
	}
}

func TestValueAt(t *testing.T) {
	t.Parallel()

	rows := append(scenarioRows(), entity.PeriodRow{Year: 2024, Quarter: 3, Fields: map[string]float64{"f": 0}})

	v, ok := ValueAt(rows, 2024, 2, "f")
	assert.True(t, ok)
	assert.Equal(t, 200.0, v)

	v, ok = ValueAt(rows, 2024, 3, "f")
	assert.True(t, ok, "a present zero is a value")
	assert.Equal(t, 0.0, v)

	_, ok = ValueAt(rows, 2024, 4, "f")
	assert.False(t, ok, "missing period has no value")

	_, ok = ValueAt(rows, 2024, 1, "other")
	assert.False(t, ok, "missing field has no value")
}

func TestPeriodIndex(t *testing.T) {
	t.Parallel()

	rows := []entity.PeriodRow{
		{Year: 2022, Quarter: 4},
		{Year: 2024, Quarter: 1},
		{Year: 2023, Quarter: 2},
		{Year: 2024, Quarter: 3},
		{Year: 2024, Quarter: 3},
		{Year: 2021, Quarter: 7},
	}
	idx := NewPeriodIndex(rows)

	assert.Equal(t, []int{2024, 2023, 2022, 2021}, idx.YearsDescending())

	q, ok := idx.LatestQuarterOfYear(2024)
	assert.True(t, ok)
	assert.Equal(t, 3, q)

	_, ok = idx.LatestQuarterOfYear(2020)
	assert.False(t, ok, "year without rows")

	_, ok = idx.LatestQuarterOfYear(2021)
	assert.False(t, ok, "only out-of-range quarters")

	row, ok := idx.QuarterRow(2023, 2)
	assert.True(t, ok)
	assert.Equal(t, 2023, row.Year)

	_, ok = idx.QuarterRow(2023, 3)
	assert.False(t, ok)

	assert.Equal(t, []int{1, 3}, idx.QuartersOfYear(2024))

	y, q, ok := idx.LatestPeriod()
	assert.True(t, ok)
	assert.Equal(t, [2]int{2024, 3}, [2]int{y, q})

	_, _, ok = NewPeriodIndex(nil).LatestPeriod()
	assert.False(t, ok)
}
