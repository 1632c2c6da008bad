// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartstock/backend-go/internal/api"
	"github.com/smartstock/backend-go/internal/cache"
	"github.com/smartstock/backend-go/internal/config"
	"github.com/smartstock/backend-go/internal/repository"
	"github.com/smartstock/backend-go/internal/repository/localstore"
	"github.com/smartstock/backend-go/internal/repository/postgres"
	"github.com/smartstock/backend-go/internal/service"
	"github.com/smartstock/backend-go/internal/store"
	"github.com/smartstock/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Cloud repositories are optional; without them the service runs
	// local-only against the file-backed fallback store.
	var (
		productRepo repository.ProductRepository
		eventRepo   repository.EventLogRepository
		configRepo  repository.BusinessConfigRepository
	)
	if cfg.App.CloudEnabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		productRepo = postgres.NewProductRepository(db)
		eventRepo = postgres.NewEventLogRepository(db)
		configRepo = postgres.NewBusinessConfigRepository(db)
	} else {
		logger.Log.Warn().Msg("Cloud persistence disabled, running local-only")
	}

	local, err := localstore.New(cfg.App.DataDir)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open local store")
	}

	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Summary cache unavailable, continuing without")
		summaryCache = cache.NewNoopSummaryCache()
	}

	// Initialize services
	inventory := service.NewInventory(store.New(), productRepo, eventRepo, configRepo, local, summaryCache)
	inventory.LoadLocal()

	// Initialize HTTP server
	router := api.NewRouter(inventory, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Let in-flight background persistence land before exiting.
	inventory.Wait()

	logger.Log.Info().Msg("Server exiting")
}
