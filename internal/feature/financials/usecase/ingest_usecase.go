package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/shared/generation"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/shared/ratelimiter"
)

// Ingest outcomes reported to the IngestObserver.
const (
	OutcomeStored = "stored"
	OutcomeStale  = "stale"
	OutcomeFailed = "failed"
)

// StatementSource fetches normalized statements from the upstream data provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StatementSource interface {
	FetchStatement(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error)
	// FetchRatios uses info for entries whose payload carries no symbol record.
	FetchRatios(ctx context.Context, symbol string, info entity.SymbolInfo) ([]entity.RatioEntry, error)
}

// SymbolDirectory resolves a ticker to its listing. It returns ErrSymbolNotFound
// for unknown tickers.
type SymbolDirectory interface {
	Lookup(ctx context.Context, code string) (entity.SymbolInfo, error)
}

// IngestObserver receives one outcome per refreshed symbol.
type IngestObserver interface {
	ObserveIngest(outcome string, elapsed time.Duration)
}

// RefreshResult reports what a Refresh run fetched and whether it was stored.
type RefreshResult struct {
	Symbol     string
	Generation uint64
	Rows       map[entity.StatementKind]int
	Ratios     int
	// Stale is true when a newer run for the symbol started before this one
	// finished fetching. Stale results are discarded.
	Stale bool
}

// IngestUsecase は外部APIから財務諸表を取得し、データベースに永続化するユースケースです。
type IngestUsecase struct {
	source      StatementSource
	statements  StatementRepository
	ratios      RatioRepository
	symbols     SymbolDirectory
	rateLimiter ratelimiter.Limiter
	guard       *generation.Guard
	observer    IngestObserver
}

// NewIngestUsecase creates a new IngestUsecase. observer may be nil.
func NewIngestUsecase(
	source StatementSource,
	statements StatementRepository,
	ratios RatioRepository,
	symbols SymbolDirectory,
	rateLimiter ratelimiter.Limiter,
	observer IngestObserver,
) *IngestUsecase {
	return &IngestUsecase{
		source:      source,
		statements:  statements,
		ratios:      ratios,
		symbols:     symbols,
		rateLimiter: rateLimiter,
		guard:       &generation.Guard{},
		observer:    observer,
	}
}

// Refresh fetches every statement and the ratios of symbol and stores them.
// Each run takes a new generation for the symbol; a run overtaken by a newer
// one while fetching stores nothing.
func (iu *IngestUsecase) Refresh(ctx context.Context, symbol string) (RefreshResult, error) {
	start := time.Now()
	res, err := iu.refresh(ctx, normalizeSymbol(symbol))
	switch {
	case err != nil:
		iu.observe(OutcomeFailed, start)
	case res.Stale:
		iu.observe(OutcomeStale, start)
	default:
		iu.observe(OutcomeStored, start)
	}
	return res, err
}

func (iu *IngestUsecase) refresh(ctx context.Context, symbol string) (RefreshResult, error) {
	info, err := iu.symbols.Lookup(ctx, symbol)
	if err != nil {
		return RefreshResult{Symbol: symbol}, err
	}

	gen := iu.guard.Next(symbol)
	res := RefreshResult{
		Symbol:     symbol,
		Generation: gen,
		Rows:       make(map[entity.StatementKind]int, len(entity.StatementKinds)),
	}

	fetched := make(map[entity.StatementKind][]entity.PeriodRow, len(entity.StatementKinds))
	for _, kind := range entity.StatementKinds {
		if err := iu.rateLimiter.Wait(ctx); err != nil {
			return res, err
		}
		rows, err := iu.source.FetchStatement(ctx, symbol, kind)
		if err != nil {
			return res, fmt.Errorf("%w: %s %s: %w", ErrUpstream, symbol, kind, err)
		}
		fetched[kind] = rows
	}

	if err := iu.rateLimiter.Wait(ctx); err != nil {
		return res, err
	}
	entries, err := iu.source.FetchRatios(ctx, symbol, info)
	if err != nil {
		return res, fmt.Errorf("%w: %s ratios: %w", ErrUpstream, symbol, err)
	}

	// 書き込み全体を世代ロックの下で行い、古い実行が新しい結果を上書きしないようにする
	err = iu.guard.Publish(symbol, gen, func() error {
		for _, kind := range entity.StatementKinds {
			rows := fetched[kind]
			if err := iu.statements.UpsertBatch(ctx, symbol, kind, rows); err != nil {
				return fmt.Errorf("store %s %s: %w", symbol, kind, err)
			}
			res.Rows[kind] = len(rows)
		}
		if err := iu.ratios.UpsertBatch(ctx, symbol, entries); err != nil {
			return fmt.Errorf("store %s ratios: %w", symbol, err)
		}
		res.Ratios = len(entries)
		return nil
	})
	if errors.Is(err, generation.ErrSuperseded) {
		slog.Warn("discarding superseded refresh", "symbol", symbol, "generation", gen)
		res.Stale = true
		return res, nil
	}
	if err != nil {
		return res, err
	}

	slog.Info("financials refreshed", "symbol", symbol, "generation", gen,
		"balance_sheet", res.Rows[entity.BalanceSheet],
		"income_statement", res.Rows[entity.IncomeStatement],
		"cash_flow", res.Rows[entity.CashFlow],
		"ratios", res.Ratios)
	return res, nil
}

// IngestAll は指定された全銘柄の財務データを順に取得し、データベースに永続化します。
// 1銘柄の失敗はログに出力して次の銘柄へ進みます。ctxがキャンセルされた場合のみエラーを返します。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) error {
	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := iu.Refresh(ctx, s); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("failed to ingest financials", "symbol", s, "error", err)
			continue
		}
	}
	return nil
}

func (iu *IngestUsecase) observe(outcome string, start time.Time) {
	if iu.observer != nil {
		iu.observer.ObserveIngest(outcome, time.Since(start))
	}
}
