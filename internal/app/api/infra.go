package api

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	catalogworkflows "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/workflows"
	catalogports "github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
	ledgermemory "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/ledger/memory"
	ledgerredis "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/ledger/redis"
	summaryports "github.com/Apurer/bakery-ledger/internal/domains/summary/ports"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
	docmemory "github.com/Apurer/bakery-ledger/internal/platform/docstore/memory"
	docpostgres "github.com/Apurer/bakery-ledger/internal/platform/docstore/postgres"
	"github.com/Apurer/bakery-ledger/internal/platform/migrations"
	platformobservability "github.com/Apurer/bakery-ledger/internal/platform/observability"
	platformpostgres "github.com/Apurer/bakery-ledger/internal/platform/postgres"
)

// OpenDocumentStore returns the Postgres document store when configured and reachable,
// otherwise an in-memory store. durable is false for the in-memory fallback, whose contents
// no other process can see.
func OpenDocumentStore(ctx context.Context, logger *slog.Logger, cfg Config) (store docstore.Store, durable bool, cleanup func()) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, logger, cfg.PostgresDriver, cfg.PostgresDSN)
	if db == nil {
		return docmemory.NewStore(), false, cleanup
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		logger.Warn("failed to migrate document schema, falling back to in-memory document store", slog.String("error", err.Error()))
		cleanup()
		return docmemory.NewStore(), false, func() {}
	}
	logger.Info("document store configured with postgres")
	return docpostgres.NewStore(db), true, cleanup
}

// ChooseSwapExecutor runs catalog swaps through Temporal only when the document store is
// durable, since the worker applies writes from its own process. The returned func releases
// the Temporal client, if one was dialled.
func ChooseSwapExecutor(logger *slog.Logger, durable bool, repo catalogports.Repository, dial func() (client.Client, error)) (catalogports.SwapExecutor, func()) {
	inline := catalogworkflows.NewInlineSwapExecutor(repo)
	if !durable {
		logger.Warn("document store is in memory, running catalog swaps inline")
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running catalog swaps inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled for catalog swaps")
	return catalogworkflows.NewTemporalSwapExecutor(temporalClient), temporalClient.Close
}

// OpenLedgerStore returns the Redis ledger store when REDIS_ADDR answers a ping,
// otherwise an in-memory store.
func OpenLedgerStore(ctx context.Context, logger *slog.Logger, cfg Config) (summaryports.LedgerStore, func()) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, keeping cash ledgers in memory")
		return ledgermemory.NewStore(), func() {}
	}
	redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, keeping cash ledgers in memory", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		_ = redisClient.Close()
		return ledgermemory.NewStore(), func() {}
	}
	logger.Info("ledger store configured with redis", slog.String("addr", cfg.RedisAddr))
	return ledgerredis.NewStore(redisClient, ledgerredis.WithTTL(cfg.LedgerTTL)), func() { _ = redisClient.Close() }
}

// DialTemporal connects a Temporal client with OpenTelemetry tracing.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
