package vnapi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
)

type stubFetcher struct {
	statement any
	ratios    any
	err       error
}

func (s stubFetcher) FetchStatement(ctx context.Context, symbol string, kind entity.StatementKind) (any, error) {
	return s.statement, s.err
}

func (s stubFetcher) FetchRatios(ctx context.Context, symbol string) (any, error) {
	return s.ratios, s.err
}

func TestSource_FetchStatement(t *testing.T) {
	t.Parallel()

	src := NewSource(stubFetcher{statement: map[string]any{
		"results": []any{
			map[string]any{"year": "2024", "quarter": "Q3", "x": "1,234"},
			map[string]any{"year": "2024", "quarter": "Q1", "x": 10.0},
			map[string]any{"note": "no period"},
		},
	}})

	rows, err := src.FetchStatement(context.Background(), "VNM", entity.CashFlow)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Quarter)
	assert.Equal(t, 1234.0, rows[1].Fields["x"])
}

func TestSource_FetchRatios_UsesFallbackSymbol(t *testing.T) {
	t.Parallel()

	src := NewSource(stubFetcher{ratios: []any{
		map[string]any{"year": 2023, "quarter": 4, "roe": 0.2},
		map[string]any{"year": 2024, "quarter": 1, "roe": 0.1},
	}})

	info := entity.SymbolInfo{Code: "VNM", Name: "Vinamilk", Exchange: "HOSE"}
	entries, err := src.FetchRatios(context.Background(), "VNM", info)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 2024, entries[0].Year, "newest first")
	assert.Equal(t, info, entries[0].Symbol)
}

func TestSource_PropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := NewSource(stubFetcher{err: boom})

	_, err := src.FetchStatement(context.Background(), "VNM", entity.CashFlow)
	assert.ErrorIs(t, err, boom)
	_, err = src.FetchRatios(context.Background(), "VNM", entity.SymbolInfo{})
	assert.ErrorIs(t, err, boom)
}
