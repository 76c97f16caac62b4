package analysis

import (
	"sort"
	"strings"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
)

var (
	symbolKeys      = []string{"symbol", "ticker", "code"}
	symbolCodeKeys  = []string{"code", "symbol", "ticker"}
	symbolNameKeys  = []string{"name", "company_name", "companyName", "organName", "short_name"}
	symbolExchgKeys = []string{"exchange", "comGroupCode", "floor", "market"}
	ratioSkipKeys   = toSet(symbolKeys, symbolNameKeys, symbolExchgKeys)
)

// NormalizeRatios flattens a ratio payload into entries sorted descending by
// (year, quarter). fallback fills the symbol sub-record when a record does not
// carry one.
func NormalizeRatios(raw any, fallback entity.SymbolInfo) []entity.RatioEntry {
	records := extractRecords(raw)
	entries := make([]entity.RatioEntry, 0, len(records))
	for _, rec := range records {
		year, quarter, ok := resolvePeriod(rec)
		if !ok {
			continue
		}
		entries = append(entries, entity.RatioEntry{
			Year:    year,
			Quarter: quarter,
			Ratios:  numericFields(rec, ratioSkipKeys),
			Symbol:  symbolInfo(rec, fallback),
		})
	}
	SortRatiosDescending(entries)
	return entries
}

// SortRatiosDescending orders entries most recent first.
func SortRatiosDescending(entries []entity.RatioEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Year != entries[j].Year {
			return entries[i].Year > entries[j].Year
		}
		return entries[i].Quarter > entries[j].Quarter
	})
}

// symbolInfo reads the symbol sub-record, which upstreams send either as a
// nested object or as flat string fields.
func symbolInfo(rec map[string]any, fallback entity.SymbolInfo) entity.SymbolInfo {
	info := fallback
	src := rec
	for _, k := range symbolKeys {
		if nested, ok := rec[k].(map[string]any); ok {
			src = nested
			break
		}
	}
	if s := firstString(src, symbolCodeKeys); s != "" {
		info.Code = strings.ToUpper(s)
	}
	if s := firstString(src, symbolNameKeys); s != "" {
		info.Name = s
	}
	if s := firstString(src, symbolExchgKeys); s != "" {
		info.Exchange = strings.ToUpper(s)
	}
	return info
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func toSet(groups ...[]string) map[string]struct{} {
	m := map[string]struct{}{}
	for _, g := range groups {
		for _, k := range g {
			m[k] = struct{}{}
		}
	}
	return m
}
