// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/adapters"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/adapters/vnapi"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/usecase"
	symbollistadapters "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/adapters"
	symbollistusecase "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/usecase"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/cache"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/config"
	infrahttp "github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/http"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/metrics"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/shared/ratelimiter"
)

// NewMarket creates the upstream statement source: a vnapi client with its own HTTP client, normalized by vnapi.Source.
func NewMarket(m *metrics.Metrics) *vnapi.Source {
	cfg := vnapi.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.HTTP)
	var obs vnapi.Observer
	if m != nil {
		obs = m
	}
	return vnapi.NewSource(vnapi.NewClient(cfg, httpClient, obs))
}

// Repositories groups the storage used by the financials usecases.
type Repositories struct {
	Symbols    *symbollistusecase.SymbolUsecase
	Statements usecase.StatementRepository
	Ratios     usecase.RatioRepository
}

// NewRepositories builds the gorm repositories, wrapped with Redis caching when rdb is not nil.
func NewRepositories(db *gorm.DB, rdb *redis.Client) Repositories {
	symbolUC := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(db))
	return Repositories{
		Symbols:    symbolUC,
		Statements: cache.NewCachingStatementRepository(rdb, nil, adapters.NewStatementRepository(db), "stmt"),
		Ratios:     cache.NewCachingRatioRepository(rdb, nil, adapters.NewRatioRepository(db), "ratios"),
	}
}

// NewIngestUsecase wires the ingestion pipeline. The upstream quota is read from
// VNAPI_RATE_LIMIT requests per VNAPI_RATE_INTERVAL.
func NewIngestUsecase(repos Repositories, m *metrics.Metrics) *usecase.IngestUsecase {
	limiter := ratelimiter.NewRateLimiter(
		config.GetInt("VNAPI_RATE_LIMIT", 8),
		config.GetDuration("VNAPI_RATE_INTERVAL", time.Minute),
	)
	var obs usecase.IngestObserver
	if m != nil {
		obs = m
	}
	return usecase.NewIngestUsecase(
		NewMarket(m),
		repos.Statements,
		repos.Ratios,
		adapters.NewSymbolDirectory(repos.Symbols),
		limiter,
		obs,
	)
}
