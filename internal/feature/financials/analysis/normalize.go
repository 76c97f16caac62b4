// Package analysis turns loosely shaped financial-statement payloads into typed
// period rows and computes the aggregates shown on the deep analysis dashboard.
//
// Every function in this package is pure and total: bad input is dropped or
// reported as "no value", never as an error or a panic.
package analysis

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
)

// shapeMatcher recognizes one known payload layout. path is a JSONPath
// expression that must resolve to the array of records.
type shapeMatcher struct {
	name string
	path string
}

// shapeMatchers lists the accepted layouts in priority order. The first
// matcher yielding an array of objects wins.
var shapeMatchers = []shapeMatcher{
	{name: "array", path: "$"},
	{name: "data", path: "$.data"},
	{name: "results", path: "$.results"},
	{name: "items", path: "$.items"},
	{name: "rows", path: "$.rows"},
	{name: "records", path: "$.records"},
	{name: "list", path: "$.list"},
	{name: "content", path: "$.content"},
	{name: "payload", path: "$.payload"},
	{name: "result", path: "$.result"},
	{name: "data.data", path: "$.data.data"},
	{name: "data.items", path: "$.data.items"},
	{name: "data.results", path: "$.data.results"},
	{name: "data.rows", path: "$.data.rows"},
	{name: "data.records", path: "$.data.records"},
	{name: "result.data", path: "$.result.data"},
	{name: "result.items", path: "$.result.items"},
	{name: "payload.data", path: "$.payload.data"},
}

var (
	yearKeys    = []string{"year", "fiscal_year", "fiscalYear", "yearReport", "nam"}
	quarterKeys = []string{"quarter", "fiscal_quarter", "fiscalQuarter", "lengthReport", "quy"}
	dateKeys    = []string{"date", "period_end", "periodEnd", "report_date", "reportDate", "period", "time"}
	periodKeys  = []string{"period", "term", "reportPeriod"}
)

// metaKeys are identification fields that never become line items.
var metaKeys = toSet(yearKeys, quarterKeys, dateKeys, periodKeys)

var (
	// 年は数字列の先頭にある必要がある (20241231, 201912 のような詰めた日付は許可)
	yearPattern        = regexp.MustCompile(`(?:^|\D)((?:19|20)\d{2})(?:\d{2}|\d{4})?(?:\D|$)`)
	quarterTagPattern  = regexp.MustCompile(`(?i)q\s*([1-4])`)
	bareQuarterPattern = regexp.MustCompile(`\b([1-4])\b`)
)

// Normalize flattens a raw statement payload into period rows sorted ascending
// by (year, quarter). Records without a resolvable year and quarter are
// dropped. Duplicate periods are kept as they come.
func Normalize(raw any) []entity.PeriodRow {
	records := extractRecords(raw)
	rows := make([]entity.PeriodRow, 0, len(records))
	for _, rec := range records {
		year, quarter, ok := resolvePeriod(rec)
		if !ok {
			continue
		}
		rows = append(rows, entity.PeriodRow{
			Year:    year,
			Quarter: quarter,
			Fields:  numericFields(rec, nil),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Less(rows[j]) })
	return rows
}

// extractRecords applies the shape matchers and falls back to treating an
// object payload as a single record.
func extractRecords(raw any) []map[string]any {
	raw = canonical(raw)
	for _, m := range shapeMatchers {
		if recs, ok := m.match(raw); ok {
			return recs
		}
	}
	if obj, ok := raw.(map[string]any); ok {
		return []map[string]any{obj}
	}
	return nil
}

func (m shapeMatcher) match(raw any) ([]map[string]any, bool) {
	var v any
	if m.path == "$" {
		v = raw
	} else {
		if _, ok := raw.(map[string]any); !ok {
			return nil, false
		}
		got, err := jsonpath.Get(m.path, raw)
		if err != nil {
			return nil, false
		}
		v = got
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	recs := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			recs = append(recs, obj)
		}
	}
	if len(recs) == 0 && len(list) > 0 {
		// an array of scalars is not a record list
		return nil, false
	}
	return recs, true
}

// canonical converts Go-native containers into the shapes produced by
// encoding/json so that callers can pass either.
func canonical(raw any) any {
	switch v := raw.(type) {
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil
		}
		return decoded
	}
	return raw
}

// resolvePeriod finds the (year, quarter) of a record.
func resolvePeriod(rec map[string]any) (int, int, bool) {
	year, ok := resolveYear(rec)
	if !ok {
		return 0, 0, false
	}
	quarter, ok := resolveQuarter(rec)
	if !ok {
		return 0, 0, false
	}
	return year, quarter, true
}

func resolveYear(rec map[string]any) (int, bool) {
	for _, k := range yearKeys {
		if y, ok := toInt(rec[k]); ok && y > 0 {
			return y, true
		}
	}
	for _, k := range append(append([]string{}, yearKeys...), dateKeys...) {
		s, ok := rec[k].(string)
		if !ok {
			continue
		}
		if m := yearPattern.FindStringSubmatch(s); m != nil {
			y, _ := strconv.Atoi(m[1])
			return y, true
		}
	}
	return 0, false
}

func resolveQuarter(rec map[string]any) (int, bool) {
	for _, k := range quarterKeys {
		if q, ok := toInt(rec[k]); ok {
			if q >= 1 && q <= 4 {
				return q, true
			}
			return 0, false
		}
	}
	for _, k := range append(append([]string{}, quarterKeys...), periodKeys...) {
		s, ok := rec[k].(string)
		if !ok {
			continue
		}
		if m := quarterTagPattern.FindStringSubmatch(s); m != nil {
			q, _ := strconv.Atoi(m[1])
			return q, true
		}
		if m := bareQuarterPattern.FindStringSubmatch(s); m != nil {
			q, _ := strconv.Atoi(m[1])
			return q, true
		}
	}
	return 0, false
}

// numericFields keeps every scalar of rec that parses as a finite number,
// excluding metadata keys and any key in skip.
func numericFields(rec map[string]any, skip map[string]struct{}) map[string]float64 {
	out := make(map[string]float64, len(rec))
	for k, v := range rec {
		if _, meta := metaKeys[k]; meta {
			continue
		}
		if _, s := skip[k]; s {
			continue
		}
		if f, ok := toFloat(v); ok {
			out[k] = f
		}
	}
	return out
}

// toFloat coerces numbers and numeric strings. Thousands separators and
// spaces are stripped from strings.
func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.Map(func(r rune) rune {
			switch r {
			case ',', ' ', '\u00a0', '_':
				return -1
			}
			return r
		}, x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt accepts integral numbers and integral numeric strings.
func toInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 0, false
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
