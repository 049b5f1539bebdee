package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/bakery-ledger/internal/platform/migrations"
	platformobservability "github.com/Apurer/bakery-ledger/internal/platform/observability"
	platformpostgres "github.com/Apurer/bakery-ledger/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := platformobservability.NewLogger(os.Stdout, slog.LevelInfo)
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot migrate")
	}

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate document schema: %v", err)
	}
	logger.Info("document schema migrated")
}
