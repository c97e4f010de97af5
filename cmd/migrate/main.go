package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/lib/pq"

	"lendledger-backend/internal/config"
	"lendledger-backend/internal/logger"
	"lendledger-backend/internal/repository/postgres"
	"lendledger-backend/internal/service"
)

// Folds every remaining legacy-shaped borrower into the loan-list model in
// one pass. Safe to run repeatedly; already-migrated borrowers are skipped.
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting legacy loan migration...")

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db)
	borrowerSvc := service.NewBorrowerService(
		store.BorrowerRepository,
		store.CollectionRepository,
		cfg.Ledger.ScheduleMonths,
	)

	migrated, err := borrowerSvc.MigrateLegacyBorrowers(context.Background())
	if err != nil {
		logger.Error("Migration failed", "error", err)
		log.Fatalf("Migration failed: %v", err)
	}

	logger.Info("Legacy loan migration completed", "migrated", migrated)
}
