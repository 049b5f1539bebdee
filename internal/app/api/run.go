package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"

	bakeryserver "github.com/Apurer/bakery-ledger/go"

	catalogdocstore "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/docstore"
	catalogobs "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/observability"
	catalogpricing "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/pricing"
	catalogapp "github.com/Apurer/bakery-ledger/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"

	pricingdocstore "github.com/Apurer/bakery-ledger/internal/domains/pricing/adapters/docstore"
	pricingobs "github.com/Apurer/bakery-ledger/internal/domains/pricing/adapters/observability"
	pricingapp "github.com/Apurer/bakery-ledger/internal/domains/pricing/application"

	summarydocstore "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/docstore"
	summaryobs "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/observability"
	summarypricing "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/pricing"
	summarypdf "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/report/pdf"
	summaryapp "github.com/Apurer/bakery-ledger/internal/domains/summary/application"

	platformobservability "github.com/Apurer/bakery-ledger/internal/platform/observability"
)

const serviceName = "bakery-ledger-api"

// Run boots the bakery HTTP API with observability, stores, and workflows wired. It
// returns once ctx is cancelled and the server has drained.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	settings := platformobservability.SettingsFromEnv(serviceName)
	settings.Environment = cfg.Environment
	instruments, shutdown, err := platformobservability.Init(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, durable, closeStore := OpenDocumentStore(ctx, logger, cfg)
	defer closeStore()
	ledgers, closeLedgers := OpenLedgerStore(ctx, logger, cfg)
	defer closeLedgers()

	prices := pricingobs.New(
		pricingapp.NewService(
			pricingdocstore.NewPriceRepository(store),
			pricingdocstore.NewBeverageRepository(store),
		),
		pricingobs.WithLogger(logger),
		pricingobs.WithTracer(instruments.Tracer("internal.pricing.application")),
		pricingobs.WithMeter(instruments.Meter("internal.pricing.application")),
	)

	catalogRepo := catalogdocstore.NewRepository(store)
	swaps, closeSwaps := ChooseSwapExecutor(logger, durable, catalogRepo, func() (client.Client, error) {
		return DialTemporal(cfg, instruments)
	})
	defer closeSwaps()
	catalog := catalogobs.New(
		catalogapp.NewService(
			catalogRepo,
			swaps,
			catalogapp.WithSettleDelay(cfg.SettleDelay),
			catalogapp.WithPriceCascade(catalogpricing.NewCascade(prices)),
			catalogapp.WithRefreshListener(logRefresh(logger)),
		),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	exporter := summarypdf.NewExporter(
		summarypdf.WithBakeryName(cfg.BakeryName),
		summarypdf.WithCurrency(cfg.CurrencyLabel),
	)
	summary := summaryobs.New(
		summaryapp.NewService(
			summarydocstore.NewRecordReader(store),
			summarypricing.NewSource(prices),
			ledgers,
			summaryapp.WithExporter(exporter),
		),
		summaryobs.WithLogger(logger),
		summaryobs.WithTracer(instruments.Tracer("internal.summary.application")),
		summaryobs.WithMeter(instruments.Meter("internal.summary.application")),
	)

	handlers := bakeryserver.ApiHandleFunctions{
		CatalogAPI: bakeryserver.NewCatalogAPI(catalog),
		PricingAPI: bakeryserver.NewPricingAPI(prices, catalog),
		SummaryAPI: bakeryserver.NewSummaryAPI(summary, exporter),
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router = bakeryserver.NewRouterWithGinEngine(router, handlers)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("bakery API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("bakery API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down bakery API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func logRefresh(logger *slog.Logger) catalogports.RefreshListener {
	return func(ctx context.Context, items []catalogdomain.Item) {
		logger.LogAttrs(ctx, slog.LevelDebug, "catalog refreshed after move", slog.Int("items", len(items)))
	}
}
