// File: app/app.go
package app

import (
	"context"
	"go-ledger-api/config"
	"go-ledger-api/db"
	"go-ledger-api/handler"
	"go-ledger-api/logger"
	"go-ledger-api/repository"
	"go-ledger-api/router"
	"go-ledger-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error applying database migrations: %v", err)
	}

	if config.AppConfig.Seed.Enabled {
		if err := db.SeedIfEmpty(database); err != nil {
			logger.Log.Fatalf("Error seeding demo accounts: %v", err)
		}
	}

	// --- Wiring All Layers Together ---
	accountRepo := repository.NewAccountRepository(database)
	ledgerService := service.NewLedgerService(accountRepo)
	accountHandler := handler.NewAccountHandler(ledgerService)

	r := router.NewRouter(accountHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
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

// TestApp bundles the wired layers over an arbitrary store so integration
// tests can run the full HTTP stack without a database.
type TestApp struct {
	Repo   repository.IAccountRepository
	Router http.Handler
}

func NewTestApp(repo repository.IAccountRepository) *TestApp {
	ledgerService := service.NewLedgerService(repo)
	accountHandler := handler.NewAccountHandler(ledgerService)

	return &TestApp{
		Repo:   repo,
		Router: router.NewRouter(accountHandler),
	}
}
