package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/niharikakanakala/products-api/internal/app/service"
	"github.com/niharikakanakala/products-api/internal/domain"
	"github.com/niharikakanakala/products-api/internal/infrastructure/config"
	httpserver "github.com/niharikakanakala/products-api/internal/infrastructure/http"
	"github.com/niharikakanakala/products-api/internal/infrastructure/http/handler"
	"github.com/niharikakanakala/products-api/internal/infrastructure/repository/memory"
	"github.com/niharikakanakala/products-api/internal/infrastructure/repository/postgres"
	"github.com/niharikakanakala/products-api/internal/infrastructure/telemetry"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize OpenTelemetry
	var telem *telemetry.Telemetry
	if cfg.OTLP.ExportEnabled {
		t, err := telemetry.NewTelemetry(&cfg.OTLP)
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
		telem = t
	} else {
		telem = telemetry.NewNoOpTelemetry(&cfg.OTLP)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("products-api")
	meter := telem.MeterProvider.Meter("products-api")
	logger := telem.Logger

	logger.Info("Starting Products API")

	// Initialize repository: PostgreSQL when configured, in-memory otherwise
	var repo domain.ProductRepository
	if cfg.Database.URL != "" {
		pool, err := postgres.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err.Error())
			os.Exit(1)
		}
		defer pool.Close()
		repo = postgres.NewProductRepository(pool, tracer, logger)
		logger.Info("Using PostgreSQL repository")
	} else {
		repo = memory.NewProductRepository(tracer, logger)
		logger.Info("Using in-memory repository")
	}

	// Initialize service
	productService := service.NewProductService(repo, tracer, meter, logger)

	// Initialize handler
	productHandler := handler.NewProductHandler(productService, logger)

	// Initialize HTTP server
	server := httpserver.NewServer(cfg, productHandler, logger, telem)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err.Error())
			cancel()
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err.Error())
	}

	logger.Info("Server stopped")
}
