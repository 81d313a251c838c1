// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"card-bank-api/config"
	"card-bank-api/db"
	"card-bank-api/handler"
	"card-bank-api/logger"
	"card-bank-api/repository"
	"card-bank-api/router"
	"card-bank-api/service"

	"github.com/redis/go-redis/v9"
)

func Run() {
	logger.Init()
	logger.Log.Info("Logger initialized")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect(cfg)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		// The card-listing cache is an optimization; the API works without it.
		logger.Log.WithError(err).Warn("Redis unavailable, card listing will not be cached")
		redisClient = nil
	}

	r := buildRouter(database, redisClient, cfg)

	port := cfg.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires repositories, services and handlers around the given
// connections.
func buildRouter(database *sql.DB, redisClient *redis.Client, cfg *config.Config) http.Handler {
	cardRepo := repository.NewCardRepository(database)
	accountRepo := repository.NewAccountRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)

	cardService := service.NewCardService(cardRepo, redisClient)
	transactionService := service.NewTransactionService(database, &cfg.Limits, cardRepo, accountRepo, transactionRepo)
	reportService := service.NewReportService(transactionRepo)

	cardHandler := handler.NewCardHandler(cardService)
	transactionHandler := handler.NewTransactionHandler(transactionService, reportService)

	return router.NewRouter(cfg.API.Key, cardHandler, transactionHandler)
}

// TestApp exposes the wired router and raw connections to integration tests.
type TestApp struct {
	DB     *sql.DB
	Config *config.Config
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client, cfg *config.Config) *TestApp {
	return &TestApp{
		DB:     database,
		Config: cfg,
		Router: buildRouter(database, redisClient, cfg),
	}
}
