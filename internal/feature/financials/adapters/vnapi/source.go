package vnapi

import (
	"context"
	"log/slog"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/analysis"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/usecase"
)

// PayloadFetcher returns raw decoded payloads.
type PayloadFetcher interface {
	FetchStatement(ctx context.Context, symbol string, kind entity.StatementKind) (any, error)
	FetchRatios(ctx context.Context, symbol string) (any, error)
}

// Source normalizes provider payloads into typed rows.
type Source struct {
	fetcher PayloadFetcher
}

var _ usecase.StatementSource = (*Source)(nil)

// NewSource wraps fetcher.
func NewSource(fetcher PayloadFetcher) *Source {
	return &Source{fetcher: fetcher}
}

// FetchStatement fetches and normalizes one statement.
func (s *Source) FetchStatement(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error) {
	raw, err := s.fetcher.FetchStatement(ctx, symbol, kind)
	if err != nil {
		return nil, err
	}
	rows := analysis.Normalize(raw)
	if len(rows) == 0 && raw != nil {
		slog.Warn("statement payload had no usable periods", "symbol", symbol, "statement", kind)
	}
	return rows, nil
}

// FetchRatios fetches and normalizes the ratio entries, newest first.
func (s *Source) FetchRatios(ctx context.Context, symbol string, info entity.SymbolInfo) ([]entity.RatioEntry, error) {
	raw, err := s.fetcher.FetchRatios(ctx, symbol)
	if err != nil {
		return nil, err
	}
	entries := analysis.NormalizeRatios(raw, info)
	if len(entries) == 0 && raw != nil {
		slog.Warn("ratio payload had no usable periods", "symbol", symbol)
	}
	return entries, nil
}
