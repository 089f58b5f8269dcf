// Command mockapi serves a local API-Football look-alike for development.
//
// Usage:
//
//	scoracle-mockapi
//	MOCK_API_PORT=9000 MOCK_API_KEY=dev scoracle-mockapi
//
// Point the CLI at it with API_FOOTBALL_BASE_URL=http://127.0.0.1:8090.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-predict/internal/config"
	"github.com/albapepper/scoracle-predict/internal/mockapi"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ds, err := mockapi.DefaultDataset()
	if err != nil {
		logger.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}

	addr := cfg.MockAddr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      mockapi.NewRouter(ds, cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting mock API-Football server",
			"addr", addr,
			"leagues", len(ds.Leagues),
			"fixtures", len(ds.Fixtures),
			"key_required", cfg.MockKey != "",
			"rate_limit", cfg.RateLimitEnabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
