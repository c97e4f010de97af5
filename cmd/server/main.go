package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"lendledger-backend/internal/api/httpapi"
	"lendledger-backend/internal/config"
	"lendledger-backend/internal/logger"
	"lendledger-backend/internal/repository/postgres"
	"lendledger-backend/internal/security"
	"lendledger-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LendLedger Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	borrowerSvc := service.NewBorrowerService(
		store.BorrowerRepository,
		store.CollectionRepository,
		cfg.Ledger.ScheduleMonths,
	)
	collectionSvc := service.NewCollectionService(
		store.CollectionRepository,
		store.BorrowerRepository,
	)
	dashboardSvc := service.NewDashboardService(
		store.BorrowerRepository,
		store.CollectionRepository,
		cfg.Ledger.UpcomingWindowDays,
		int32(cfg.Ledger.UpcomingResultLimit),
	)
	adminSvc := service.NewAdminService(
		store.UserRepository,
		store.BorrowerRepository,
		store.CollectionRepository,
	)

	// Initialize HTTP handlers and router
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:        httpapi.NewAuthHandlers(authSvc),
		Borrowers:   httpapi.NewBorrowerHandlers(borrowerSvc),
		Collections: httpapi.NewCollectionHandlers(collectionSvc, dashboardSvc),
		Admin:       httpapi.NewAdminHandlers(adminSvc),
	}, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
