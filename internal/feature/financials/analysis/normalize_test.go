package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
)

// decode parses a JSON literal the same way the upstream client does.
func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v), "invalid test payload")
	return v
}

func TestNormalize_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  string
		expected []entity.PeriodRow
	}{
		{
			name:    "results container with string year, Q tag and thousands separator",
			payload: `{"results": [{"year": "2024", "quarter": "Q3", "x": "1,234"}]}`,
			expected: []entity.PeriodRow{
				{Year: 2024, Quarter: 3, Fields: map[string]float64{"x": 1234}},
			},
		},
		{
			name:    "top-level array",
			payload: `[{"year": 2023, "quarter": 4, "net_profit_loss_before_tax": 10}]`,
			expected: []entity.PeriodRow{
				{Year: 2023, Quarter: 4, Fields: map[string]float64{"net_profit_loss_before_tax": 10}},
			},
		},
		{
			name:    "single record object",
			payload: `{"year": 2022, "quarter": 1, "purchase_of_fixed_assets": -5}`,
			expected: []entity.PeriodRow{
				{Year: 2022, Quarter: 1, Fields: map[string]float64{"purchase_of_fixed_assets": -5}},
			},
		},
		{
			name:    "nested data.items container",
			payload: `{"status": "ok", "data": {"items": [{"year": 2021, "quarter": 2, "a": 1}]}}`,
			expected: []entity.PeriodRow{
				{Year: 2021, Quarter: 2, Fields: map[string]float64{"a": 1}},
			},
		},
		{
			name:     "empty container yields no rows",
			payload:  `{"data": []}`,
			expected: []entity.PeriodRow{},
		},
		{
			name:    "year from date string and quarter from period string",
			payload: `{"rows": [{"report_date": "2024-06-30", "period": "Q2/2024", "a": "7"}]}`,
			expected: []entity.PeriodRow{
				{Year: 2024, Quarter: 2, Fields: map[string]float64{"a": 7}},
			},
		},
		{
			name:    "bare digit quarter in period string",
			payload: `{"records": [{"year": 2020, "period": "2020-3", "a": 1}]}`,
			expected: []entity.PeriodRow{
				{Year: 2020, Quarter: 3, Fields: map[string]float64{"a": 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rows := Normalize(decode(t, tt.payload))

			assert.Equal(t, tt.expected, rows)
		})
	}
}

func TestNormalize_DropsUnresolvablePeriods(t *testing.T) {
	t.Parallel()

	payload := decode(t, `[
		{"quarter": 1, "a": 1},
		{"year": 2024, "a": 2},
		{"year": 2024, "quarter": 5, "a": 3},
		{"year": "n/a", "quarter": "n/a", "a": 4},
		{"year": 2024, "quarter": 1, "a": 5}
	]`)

	rows := Normalize(payload)

	require.Len(t, rows, 1)
	assert.Equal(t, 2024, rows[0].Year)
	assert.Equal(t, 1, rows[0].Quarter)
	assert.Equal(t, 5.0, rows[0].Fields["a"])
}

func TestResolveYear_DateStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		date   string
		want   int
		wantOK bool
	}{
		{name: "iso date", date: "2024-06-30", want: 2024, wantOK: true},
		{name: "day first", date: "30/06/2023", want: 2023, wantOK: true},
		{name: "compact yyyymmdd", date: "20241231", want: 2024, wantOK: true},
		{name: "compact yyyymm", date: "201912", want: 2019, wantOK: true},
		{name: "year inside text", date: "Q4 2022", want: 2022, wantOK: true},
		{name: "longer number", date: "12019", wantOK: false},
		{name: "inside a reference number", date: "ref-920245", wantOK: false},
		{name: "too many digits", date: "2024123199", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := resolveYear(map[string]any{"report_date": tt.date})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalize_MissingIsNotZero(t *testing.T) {
	t.Parallel()

	rows := Normalize(decode(t, `[{"year": 2024, "quarter": 1, "zero": 0, "text": "n/a", "empty": "", "flag": true, "nothing": null}]`))

	require.Len(t, rows, 1)
	v, ok := rows[0].Value("zero")
	assert.True(t, ok, "a reported zero must be kept")
	assert.Equal(t, 0.0, v)
	for _, field := range []string{"text", "empty", "flag", "nothing"} {
		_, ok := rows[0].Value(field)
		assert.False(t, ok, "field %q should be omitted", field)
	}
}

func TestNormalize_KeepsDuplicatesAndSortsAscending(t *testing.T) {
	t.Parallel()

	rows := Normalize(decode(t, `[
		{"year": 2024, "quarter": 2, "a": 1},
		{"year": 2023, "quarter": 4, "a": 2},
		{"year": 2024, "quarter": 2, "a": 3},
		{"year": 2024, "quarter": 1, "a": 4}
	]`))

	require.Len(t, rows, 4, "duplicate periods must not be merged")
	got := make([][2]int, 0, len(rows))
	for _, r := range rows {
		got = append(got, [2]int{r.Year, r.Quarter})
	}
	assert.Equal(t, [][2]int{{2023, 4}, {2024, 1}, {2024, 2}, {2024, 2}}, got)
	// stable order for the duplicates
	assert.Equal(t, 1.0, rows[2].Fields["a"])
	assert.Equal(t, 3.0, rows[3].Fields["a"])
}

func TestNormalize_GoNativeInput(t *testing.T) {
	t.Parallel()

	rows := Normalize([]map[string]any{
		{"year": 2024, "quarter": 1, "f": 100},
		{"year": 2023, "quarter": 1, "f": int64(50)},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, 2023, rows[0].Year)
	assert.Equal(t, 50.0, rows[0].Fields["f"])
}

func TestNormalize_UnusableInput(t *testing.T) {
	t.Parallel()

	for _, raw := range []any{nil, "text", 42.0, decode(t, `[1, 2, 3]`), json.RawMessage(`{broken`)} {
		assert.Empty(t, Normalize(raw))
	}
}

func TestToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{in: 1.5, want: 1.5, wantOK: true},
		{in: "1,234,567", want: 1234567, wantOK: true},
		{in: " -12.5 ", want: -12.5, wantOK: true},
		{in: json.Number("42"), want: 42, wantOK: true},
		{in: "NaN", wantOK: false},
		{in: "abc", wantOK: false},
		{in: "", wantOK: false},
		{in: true, wantOK: false},
		{in: nil, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := toFloat(tt.in)
		assert.Equal(t, tt.wantOK, ok, "toFloat(%#v)", tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "toFloat(%#v)", tt.in)
		}
	}
}

func TestNormalizeRatios(t *testing.T) {
	t.Parallel()

	payload := decode(t, `{"data": [
		{"year": 2023, "quarter": 4, "roe": "0.18", "symbol": {"code": "vnm", "name": "Vinamilk", "exchange": "hose"}},
		{"year": 2024, "quarter": 1, "roe": 0.2, "currentRatio": 1.9},
		{"year": 2024, "quarter": 2, "pe": 15.2, "ticker": "VNM"}
	]}`)

	entries := NormalizeRatios(payload, entity.SymbolInfo{Code: "VNM", Name: "Vinamilk", Exchange: "HOSE"})

	require.Len(t, entries, 3)
	assert.Equal(t, [2]int{2024, 2}, [2]int{entries[0].Year, entries[0].Quarter})
	assert.Equal(t, [2]int{2024, 1}, [2]int{entries[1].Year, entries[1].Quarter})
	assert.Equal(t, [2]int{2023, 4}, [2]int{entries[2].Year, entries[2].Quarter})

	assert.Equal(t, map[string]float64{"pe": 15.2}, entries[0].Ratios, "symbol fields are not ratios")
	assert.Equal(t, entity.SymbolInfo{Code: "VNM", Name: "Vinamilk", Exchange: "HOSE"}, entries[2].Symbol)
	assert.Equal(t, 0.18, entries[2].Ratios["roe"])
	assert.Equal(t, "VNM", entries[1].Symbol.Code, "fallback symbol is used when the record has none")
}
