package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/bakery-ledger/internal/app/api"
	catalogdocstore "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/docstore"
	platformobservability "github.com/Apurer/bakery-ledger/internal/platform/observability"
	catalogactivities "github.com/Apurer/bakery-ledger/internal/platform/temporal/activities/catalog"
	catalogworkflows "github.com/Apurer/bakery-ledger/internal/platform/temporal/workflows/catalog"
)

func main() {
	ctx := context.Background()
	const serviceName = "bakery-ledger-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	settings := platformobservability.SettingsFromEnv(serviceName)
	settings.Environment = cfg.Environment
	instruments, shutdown, err := platformobservability.Init(ctx, settings)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, durable, closeStore := api.OpenDocumentStore(ctx, logger, cfg)
	defer closeStore()
	if !durable {
		closeStore()
		logger.Error("worker needs the postgres document store shared with the API, check POSTGRES_DSN")
		os.Exit(1)
	}
	activities := catalogactivities.NewActivities(catalogdocstore.NewRepository(store))

	temporalClient, err := api.DialTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, catalogworkflows.ReorderTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(catalogworkflows.ReorderWorkflow, workflow.RegisterOptions{Name: catalogworkflows.ReorderWorkflowName})
	w.RegisterActivityWithOptions(activities.ApplyOrder, activity.RegisterOptions{Name: catalogactivities.ApplyOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", catalogworkflows.ReorderTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
