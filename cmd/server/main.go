package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirepath-api/internal/aggregator"
	"hirepath-api/internal/api/routes"
	"hirepath-api/internal/cache"
	"hirepath-api/internal/config"
	"hirepath-api/internal/logging"
	"hirepath-api/internal/matcher"
	"hirepath-api/internal/parser"
	"hirepath-api/internal/providers"
	"hirepath-api/internal/quota"
	"hirepath-api/internal/store"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger := logging.GetGlobalLogger()
	logger.Info("Starting HirePath job discovery service")

	ctx := context.Background()

	// Persisted store: Postgres when configured, in-memory otherwise
	var st store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatal("Failed to connect to Postgres", map[string]interface{}{"error": err.Error()})
		}
		st = pg
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		st = store.NewMemoryStore()
	}
	defer st.Close()

	// Redis backs the resume-parse cache; the service runs without it
	rdb, err := parser.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, parse caching disabled", map[string]interface{}{"error": err.Error()})
		rdb = nil
	}

	// Provider selection is static for the life of the process
	provider := providers.Select(cfg)
	logger.Info("Job provider selected", map[string]interface{}{"provider": provider.Name()})

	guard := quota.NewGuard(cfg)
	resultCache := cache.NewResultCache(cfg)
	agg := aggregator.New(st, provider, guard)
	search := aggregator.NewService(resultCache, agg)
	orchestrator := matcher.New(cfg)
	parserClient := parser.New(cfg, rdb)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, routes.Deps{
		Store:       st,
		Search:      search,
		Guard:       guard,
		ResultCache: resultCache,
		Matcher:     orchestrator,
		Parser:      parserClient,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		if rdb != nil {
			if err := rdb.Close(); err != nil {
				logger.Error("Error closing Redis client", map[string]interface{}{"error": err.Error()})
			}
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
