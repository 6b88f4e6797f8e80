package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "sisdisfraz-backend/internal/api/http"
	"sisdisfraz-backend/internal/cache"
	"sisdisfraz-backend/internal/config"
	"sisdisfraz-backend/internal/logger"
	"sisdisfraz-backend/internal/repository/postgres"
	"sisdisfraz-backend/internal/security"
	"sisdisfraz-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SisDisfraz Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize optional catalog cache
	var catalogCache service.CatalogCache
	if cfg.Redis.Enabled {
		rdb, err := cache.Connect(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, running without catalog cache", "error", err)
		} else {
			defer rdb.Close()
			catalogCache = cache.NewCatalogCache(rdb, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
			logger.Info("Catalog cache enabled", "addr", cfg.Redis.Addr)
		}
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Services
	authSvc := service.NewAuthService(store.ProfileRepository, tokenManager)
	pricingSvc := service.NewPricingService(store.SeasonRepository)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.ClientRepository,
		store.CostumeRepository,
		store.PaymentRepository,
		pricingSvc,
	)
	clientSvc := service.NewClientService(store.ClientRepository, store.AuditRepository)
	costumeSvc := service.NewCostumeService(store.CostumeRepository, catalogCache)
	seasonSvc := service.NewSeasonService(store.SeasonRepository)
	reportSvc := service.NewReportService(store.PaymentRepository)

	// Initialize HTTP handlers and router
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:    httpapi.NewAuthHandler(authSvc),
		Rental:  httpapi.NewRentalHandler(rentalSvc),
		Client:  httpapi.NewClientHandler(clientSvc),
		Costume: httpapi.NewCostumeHandler(costumeSvc),
		Season:  httpapi.NewSeasonHandler(seasonSvc),
		Report:  httpapi.NewReportHandler(reportSvc),
		Health:  httpapi.NewHealthHandler(db),
	}, authMiddleware)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
