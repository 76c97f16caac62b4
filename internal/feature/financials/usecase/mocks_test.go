package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
)

var ErrDB = errors.New("database error")

// mockStatementRepository is a mock implementation of StatementRepository.
type mockStatementRepository struct {
	FindFunc        func(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error)
	UpsertBatchFunc func(ctx context.Context, symbol string, kind entity.StatementKind, rows []entity.PeriodRow) error

	mu      sync.Mutex
	upserts map[entity.StatementKind][]entity.PeriodRow
}

func (m *mockStatementRepository) Find(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, symbol, kind)
	}
	return nil, nil
}

func (m *mockStatementRepository) UpsertBatch(ctx context.Context, symbol string, kind entity.StatementKind, rows []entity.PeriodRow) error {
	m.mu.Lock()
	if m.upserts == nil {
		m.upserts = map[entity.StatementKind][]entity.PeriodRow{}
	}
	m.upserts[kind] = rows
	m.mu.Unlock()
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, symbol, kind, rows)
	}
	return nil
}

// mockRatioRepository is a mock implementation of RatioRepository.
type mockRatioRepository struct {
	FindFunc        func(ctx context.Context, symbol string) ([]entity.RatioEntry, error)
	UpsertBatchFunc func(ctx context.Context, symbol string, entries []entity.RatioEntry) error
	UpsertCalls     int
}

func (m *mockRatioRepository) Find(ctx context.Context, symbol string) ([]entity.RatioEntry, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, symbol)
	}
	return nil, nil
}

func (m *mockRatioRepository) UpsertBatch(ctx context.Context, symbol string, entries []entity.RatioEntry) error {
	m.UpsertCalls++
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, symbol, entries)
	}
	return nil
}

// mockStatementSource is a mock implementation of StatementSource.
type mockStatementSource struct {
	FetchStatementFunc func(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error)
	FetchRatiosFunc    func(ctx context.Context, symbol string, info entity.SymbolInfo) ([]entity.RatioEntry, error)
	FetchCalls         int
}

func (m *mockStatementSource) FetchStatement(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error) {
	m.FetchCalls++
	if m.FetchStatementFunc != nil {
		return m.FetchStatementFunc(ctx, symbol, kind)
	}
	return nil, nil
}

func (m *mockStatementSource) FetchRatios(ctx context.Context, symbol string, info entity.SymbolInfo) ([]entity.RatioEntry, error) {
	m.FetchCalls++
	if m.FetchRatiosFunc != nil {
		return m.FetchRatiosFunc(ctx, symbol, info)
	}
	return nil, nil
}

// mockSymbolDirectory is a mock implementation of SymbolDirectory.
type mockSymbolDirectory struct {
	LookupFunc func(ctx context.Context, code string) (entity.SymbolInfo, error)
}

func (m *mockSymbolDirectory) Lookup(ctx context.Context, code string) (entity.SymbolInfo, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, code)
	}
	return entity.SymbolInfo{Code: code}, nil
}

// mockRateLimiter returns immediately and counts calls.
type mockRateLimiter struct {
	WaitCalls int
	Err       error
}

func (m *mockRateLimiter) Wait(ctx context.Context) error {
	m.WaitCalls++
	return m.Err
}

// mockObserver records ingest outcomes.
type mockObserver struct {
	outcomes []string
}

func (m *mockObserver) ObserveIngest(outcome string, _ time.Duration) {
	m.outcomes = append(m.outcomes, outcome)
}
