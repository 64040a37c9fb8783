package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/codyseavey/tcg-tracker/collection/internal/api"
	"github.com/codyseavey/tcg-tracker/collection/internal/config"
	"github.com/codyseavey/tcg-tracker/collection/internal/database"
	"github.com/codyseavey/tcg-tracker/collection/internal/importer"
	"github.com/codyseavey/tcg-tracker/collection/internal/logging"
	"github.com/codyseavey/tcg-tracker/collection/internal/services"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize database
	if err := database.Initialize(cfg.Database.Path, database.ParseLogLevel(cfg.Database.LogLevel), logger); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Reconciliation rules, optionally extended from a YAML file
	rules, err := importer.LoadRules(cfg.Import.RulesFile)
	if err != nil {
		logger.Fatal("Failed to load import rules", zap.Error(err))
	}

	// Initialize services
	rejectStorage := services.NewRejectStorageService(cfg.Import.RejectsDir, logger)
	importService := services.NewImportService(database.GetDB(), rules, rejectStorage, cfg.Import.CatalogCacheSize, logger)

	// Setup router
	router := api.SetupRouter(cfg, importService)

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests (including a running import) a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
