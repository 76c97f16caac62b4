package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/usecase"
)

var _ usecase.StatementRepository = (*CachingStatementRepository)(nil)

// CachingStatementRepository decorates a StatementRepository with Redis caching.
// Rows are cached per (symbol, statement kind).
type CachingStatementRepository struct {
	inner     usecase.StatementRepository
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

// NewCachingStatementRepository wraps inner. A nil ttl expires entries at the
// next 08:00 Vietnam time. An empty namespace defaults to "stmt".
func NewCachingStatementRepository(rdb *redis.Client, ttl func() time.Duration, inner usecase.StatementRepository, namespace string) *CachingStatementRepository {
	if ttl == nil {
		ttl = TimeUntilNext8AM
	}
	if namespace == "" {
		namespace = "stmt"
	}
	return &CachingStatementRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch stores rows and invalidates the cached statement.
func (c *CachingStatementRepository) UpsertBatch(ctx context.Context, symbol string, kind entity.StatementKind, rows []entity.PeriodRow) error {
	if err := c.inner.UpsertBatch(ctx, symbol, kind, rows); err != nil {
		return err
	}
	if c.rdb == nil || len(rows) == 0 {
		return nil
	}
	// best effort: a stale entry only lives until its TTL
	if err := invalidate(ctx, c.rdb, c.cacheKey(symbol, kind)); err != nil {
		slog.Warn("statement cache invalidation failed", "symbol", symbol, "kind", kind, "error", err)
	}
	return nil
}

// Find returns the rows from cache, falling back to the database.
func (c *CachingStatementRepository) Find(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, symbol, kind)
	}

	key := c.cacheKey(symbol, kind)

	// 1) キャッシュを確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PeriodRow
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 破損したキャッシュを削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) DBへフォールバック
	out, err := c.inner.Find(ctx, symbol, kind)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュへ保存（ベストエフォート）
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl()).Err()
	}
	return out, nil
}

func (c *CachingStatementRepository) cacheKey(symbol string, kind entity.StatementKind) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(symbol), safe(string(kind)))
}
