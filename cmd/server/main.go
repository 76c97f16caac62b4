package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/app/di"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/app/router"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/adapters"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/catalog"
	financialshandler "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/transport/handler"
	financialsusecase "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/usecase"
	symbolentity "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/domain/entity"
	symbollisthandler "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/transport/handler"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/config"
	infradb "github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/db"
	healthhandler "github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/http/handler"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/logger"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/metrics"
	infraredis "github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/redis"
)

func main() {
	config.LoadDotEnv(".env")
	logger.Init(config.GetString("APP_ENV", "development"), config.GetString("LOG_LEVEL", "info"))

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// db
	models := append([]any{&symbolentity.Symbol{}}, adapters.Models()...)
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), models...)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	checks := []healthhandler.Check{{Name: "db", Ping: sqlDB.PingContext}}

	// Redis
	rdb, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig())
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
		checks = append(checks, healthhandler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	// Repository (Redisキャッシュでラップ)
	repos := di.NewRepositories(db, rdb)

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	// Usecase
	financialsUC := financialsusecase.NewFinancialsUsecase(repos.Statements, repos.Ratios, cat)
	var ingestUC financialshandler.Refresher
	if config.GetBool("REFRESH_ENABLED", true) {
		ingestUC = di.NewIngestUsecase(repos, m)
	}

	// Handler
	symbolH := symbollisthandler.NewSymbolHandler(repos.Symbols)
	financialsH := financialshandler.NewFinancialsHandler(financialsUC, ingestUC)

	// ルータ生成
	r := router.NewRouter(symbolH, financialsH, m, checks...)

	srv := &http.Server{
		Addr:              ":" + config.GetString("PORT", "8080"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
