package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/app/di"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/adapters"
	symbolentity "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/config"
	infradb "github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/db"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/logger"
	infraredis "github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/redis"
)

func main() {
	config.LoadDotEnv(".env")
	logger.Init(config.GetString("APP_ENV", "development"), config.GetString("LOG_LEVEL", "info"))

	if err := run(); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
	slog.Info("ingest ok")
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.GetDuration("INGEST_TIMEOUT", 30*time.Minute))
	defer cancel()

	models := append([]any{&symbolentity.Symbol{}}, adapters.Models()...)
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), models...)
	if err != nil {
		return err
	}

	// 取り込み後にキャッシュを無効化するため、Redisがあれば同じデコレーターを使う
	rdb, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig())
	if err != nil {
		slog.Warn("Redis unavailable, cached views expire at 08:00", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	repos := di.NewRepositories(db, rdb)
	uc := di.NewIngestUsecase(repos, nil)

	symbols := config.GetList("INGEST_SYMBOLS")
	if len(symbols) == 0 {
		symbols, err = repos.Symbols.ListActiveCodes(ctx)
		if err != nil {
			return err
		}
	}

	slog.Info("ingest started", "symbols", len(symbols))
	return uc.IngestAll(ctx, symbols)
}
