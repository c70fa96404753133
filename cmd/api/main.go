package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"golehmer/adapters/api"
	"golehmer/adapters/postgres"
	adapterstats "golehmer/adapters/stats"
	"golehmer/app"
	"golehmer/internal"
	"golehmer/internal/config"
	"golehmer/internal/testkit"
	"golehmer/ports"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	ledger, err := buildLedger(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize run ledger: %v", err)
	}

	runs := app.NewRunService(ledger, adapterstats.NewQualityBattery(), logger)
	server := api.NewServer(runs, logger)

	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildLedger wires the PostgreSQL ledger when DATABASE_URL is set and
// falls back to the in-memory ledger otherwise, so the service can run
// without any infrastructure for local experiments.
func buildLedger(cfg *config.Config, logger *internal.Logger) (ports.RunLedgerPort, error) {
	if !cfg.Database.Enabled {
		logger.Warn("DATABASE_URL not set; run records will not survive restarts")
		return testkit.NewInMemoryRunLedger(), nil
	}

	db, err := postgres.Open(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	adapter := postgres.NewRunLedgerAdapter(db)
	if err := adapter.EnsureSchema(context.Background()); err != nil {
		return nil, err
	}
	logger.Info("run ledger backed by PostgreSQL")
	return adapter, nil
}
