// Package usecase implements the financial statement and ratio queries behind
// the deep analysis dashboard, and the ingestion that keeps them fresh.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/analysis"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/catalog"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/format"
)

// StatementRepository abstracts storage of normalized statement rows.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StatementRepository interface {
	// Find returns the rows of one statement sorted ascending by (year, quarter).
	Find(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error)
	// UpsertBatch stores rows, replacing any stored row of the same period.
	UpsertBatch(ctx context.Context, symbol string, kind entity.StatementKind, rows []entity.PeriodRow) error
}

// RatioRepository abstracts storage of ratio entries.
type RatioRepository interface {
	// Find returns the entries sorted descending by (year, quarter).
	Find(ctx context.Context, symbol string) ([]entity.RatioEntry, error)
	UpsertBatch(ctx context.Context, symbol string, entries []entity.RatioEntry) error
}

// FieldCatalog provides the displayed line items per statement.
type FieldCatalog interface {
	Fields(kind string) []string
	Item(kind, field string) (catalog.Item, bool)
}

// financialsUsecase serves statement tables and ratios from storage.
type financialsUsecase struct {
	statements StatementRepository
	ratios     RatioRepository
	catalog    FieldCatalog
}

// NewFinancialsUsecase creates a new financialsUsecase.
func NewFinancialsUsecase(statements StatementRepository, ratios RatioRepository, c FieldCatalog) *financialsUsecase {
	return &financialsUsecase{statements: statements, ratios: ratios, catalog: c}
}

// GetStatement returns the stored rows of a statement, ascending by period.
func (u *financialsUsecase) GetStatement(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error) {
	symbol = normalizeSymbol(symbol)
	if _, err := entity.ParseStatementKind(string(kind)); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatement, kind)
	}
	rows, err := u.statements.Find(ctx, symbol, kind)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNoData, symbol, kind)
	}
	return rows, nil
}

// GetPeriods lists the reported years, most recent first, with their quarters.
func (u *financialsUsecase) GetPeriods(ctx context.Context, symbol string, kind entity.StatementKind) (PeriodsView, error) {
	rows, err := u.GetStatement(ctx, symbol, kind)
	if err != nil {
		return PeriodsView{}, err
	}
	return PeriodsView{
		Symbol: normalizeSymbol(symbol),
		Kind:   kind,
		Years:  yearPeriods(analysis.NewPeriodIndex(rows)),
	}, nil
}

// GetSummary computes annual sums, the selected quarter value and both YoY
// changes for each requested field.
func (u *financialsUsecase) GetSummary(ctx context.Context, q SummaryQuery) (Summary, error) {
	if q.Year != nil && *q.Year <= 0 {
		return Summary{}, fmt.Errorf("%w: year %d", ErrInvalidPeriod, *q.Year)
	}
	if q.Quarter != nil && (*q.Quarter < 1 || *q.Quarter > 4) {
		return Summary{}, fmt.Errorf("%w: quarter %d", ErrInvalidPeriod, *q.Quarter)
	}
	rows, err := u.GetStatement(ctx, q.Symbol, q.Kind)
	if err != nil {
		return Summary{}, err
	}

	idx := analysis.NewPeriodIndex(rows)
	years := idx.YearsDescending()
	year := years[0]
	if q.Year != nil {
		year = *q.Year
		if !containsInt(years, year) {
			return Summary{}, fmt.Errorf("%w: %s %s has no rows for %d", ErrNoData, normalizeSymbol(q.Symbol), q.Kind, year)
		}
	}
	quarter, _ := idx.LatestQuarterOfYear(year)
	if q.Quarter != nil {
		quarter = *q.Quarter
	}

	fields := q.Fields
	if len(fields) == 0 {
		fields = u.catalog.Fields(string(q.Kind))
	}
	if len(fields) == 0 {
		fields = fieldUnion(rows)
	}

	f := format.ParseLocale(q.Locale)
	lines := make([]SummaryLine, 0, len(fields))
	for _, field := range fields {
		line := SummaryLine{Field: field, Label: field}
		if it, ok := u.catalog.Item(string(q.Kind), field); ok {
			if it.Label != "" {
				line.Label = it.Label
			}
			line.Section = it.Section
		}

		line.Annual = analysis.SumYear(rows, year, field)
		if quarter > 0 {
			if v, ok := analysis.ValueAt(rows, year, quarter, field); ok {
				line.Quarter = &v
			}
		}
		line.YoYAnnual = analysis.YoY(rows, year, field, analysis.ModeAnnual)
		line.YoYQuarter = analysis.YoY(rows, year, field, analysis.ModeQuarterLatest)

		line.AnnualText = f.Currency(&line.Annual)
		line.AnnualScaled = f.MagnitudeScaled(&line.Annual)
		line.QuarterText = f.Currency(line.Quarter)
		line.YoYAnnualText = f.YoYString(line.YoYAnnual)
		line.YoYQuarterText = f.YoYString(line.YoYQuarter)

		line.AnnualClass = format.AmountClass(&line.Annual)
		line.QuarterClass = format.AmountClass(line.Quarter)
		line.YoYAnnualClass = format.YoYClass(line.YoYAnnual)
		line.YoYQuarterClass = format.YoYClass(line.YoYQuarter)

		lines = append(lines, line)
	}

	return Summary{
		Symbol:  normalizeSymbol(q.Symbol),
		Kind:    q.Kind,
		Year:    year,
		Quarter: quarter,
		Years:   years,
		Lines:   lines,
	}, nil
}

// GetRatios reconciles the requested selection against the stored entries
// and returns the matching entry with its formatted ratios.
func (u *financialsUsecase) GetRatios(ctx context.Context, symbol string, sel entity.PeriodSelection, locale string) (RatioView, error) {
	symbol = normalizeSymbol(symbol)
	entries, err := u.ratios.Find(ctx, symbol)
	if err != nil {
		return RatioView{}, err
	}
	if len(entries) == 0 {
		return RatioView{}, fmt.Errorf("%w: %s ratios", ErrNoData, symbol)
	}
	entries = append([]entity.RatioEntry(nil), entries...)
	analysis.SortRatiosDescending(entries)

	reconciled := analysis.Reconcile(sel, entries)
	entry, _ := analysis.ResolveRatio(entries, reconciled)

	f := format.ParseLocale(locale)
	return RatioView{
		Symbol:    symbol,
		Selection: reconciled,
		Entry:     entry,
		Periods:   ratioPeriods(entries),
		Lines:     u.ratioLines(entry, f),
	}, nil
}

func (u *financialsUsecase) ratioLines(entry entity.RatioEntry, f *format.Formatter) []RatioLine {
	names := u.catalog.Fields(catalog.Ratios)
	listed := make(map[string]struct{}, len(names))
	for _, n := range names {
		listed[n] = struct{}{}
	}
	extra := make([]string, 0)
	for n := range entry.Ratios {
		if _, ok := listed[n]; !ok {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	lines := make([]RatioLine, 0, len(names))
	for _, n := range names {
		line := RatioLine{Field: n, Label: n}
		it, known := u.catalog.Item(catalog.Ratios, n)
		if known {
			line.Label = it.Label
			line.Section = it.Section
		}
		if v, ok := entry.Ratio(n); ok {
			line.Value = &v
		}
		if known && it.Fraction {
			line.Text = f.Percent(line.Value, true)
		} else {
			line.Text = f.Multiple(line.Value)
		}
		line.Class = format.AmountClass(line.Value)
		lines = append(lines, line)
	}
	return lines
}

func yearPeriods(idx analysis.PeriodIndex) []YearPeriods {
	years := idx.YearsDescending()
	out := make([]YearPeriods, 0, len(years))
	for _, y := range years {
		latest, _ := idx.LatestQuarterOfYear(y)
		out = append(out, YearPeriods{Year: y, Quarters: idx.QuartersOfYear(y), LatestQuarter: latest})
	}
	return out
}

// ratioPeriods groups descending entries by year.
func ratioPeriods(entries []entity.RatioEntry) []YearPeriods {
	var out []YearPeriods
	for _, e := range entries {
		if len(out) == 0 || out[len(out)-1].Year != e.Year {
			out = append(out, YearPeriods{Year: e.Year, LatestQuarter: e.Quarter})
		}
		last := &out[len(out)-1]
		if !containsInt(last.Quarters, e.Quarter) {
			last.Quarters = append(last.Quarters, e.Quarter)
		}
	}
	for i := range out {
		sort.Ints(out[i].Quarters)
	}
	return out
}

func fieldUnion(rows []entity.PeriodRow) []string {
	seen := map[string]struct{}{}
	for _, r := range rows {
		for k := range r.Fields {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
