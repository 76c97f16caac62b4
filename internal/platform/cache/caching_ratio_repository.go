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

var _ usecase.RatioRepository = (*CachingRatioRepository)(nil)

// CachingRatioRepository decorates a RatioRepository with Redis caching, one key per symbol.
type CachingRatioRepository struct {
	inner     usecase.RatioRepository
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

// NewCachingRatioRepository wraps inner. A nil ttl expires entries at the
// next 08:00 Vietnam time. An empty namespace defaults to "ratios".
func NewCachingRatioRepository(rdb *redis.Client, ttl func() time.Duration, inner usecase.RatioRepository, namespace string) *CachingRatioRepository {
	if ttl == nil {
		ttl = TimeUntilNext8AM
	}
	if namespace == "" {
		namespace = "ratios"
	}
	return &CachingRatioRepository{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// UpsertBatch stores entries and drops the cached list for the symbol.
func (c *CachingRatioRepository) UpsertBatch(ctx context.Context, symbol string, entries []entity.RatioEntry) error {
	if err := c.inner.UpsertBatch(ctx, symbol, entries); err != nil {
		return err
	}
	if c.rdb == nil || len(entries) == 0 {
		return nil
	}
	if err := invalidate(ctx, c.rdb, c.cacheKey(symbol)); err != nil {
		slog.Warn("ratio cache invalidation failed", "symbol", symbol, "error", err)
	}
	return nil
}

// Find returns the entries from cache, falling back to the database.
func (c *CachingRatioRepository) Find(ctx context.Context, symbol string) ([]entity.RatioEntry, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, symbol)
	}

	key := c.cacheKey(symbol)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.RatioEntry
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Find(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl()).Err()
	}
	return out, nil
}

func (c *CachingRatioRepository) cacheKey(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(symbol))
}
