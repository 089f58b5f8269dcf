// Command predict is the interactive match prediction CLI.
//
// Usage:
//
//	scoracle-predict
//	API_FOOTBALL_BASE_URL=http://127.0.0.1:8090 API_FOOTBALL_KEY=dev scoracle-predict
//
// It asks for a date and a league, lists that day's matches with their
// statistics from API-Football and predicts each result from the teams'
// season records and recent form.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-predict/internal/config"
	"github.com/albapepper/scoracle-predict/internal/console"
	"github.com/albapepper/scoracle-predict/internal/provider/apifootball"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "scoracle-predict",
		Short:        "Predict football match outcomes from API-Football statistics",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go func() {
		// Restore default handling after the first interrupt so a second
		// Ctrl-C kills the process.
		<-ctx.Done()
		cancel()
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	// Logs go to stderr so they never mix with prompts on stdout.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	client := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		APIHost:           cfg.APIHost,
		Timeout:           cfg.RequestTimeout,
		RequestsPerMinute: cfg.RequestsPerMinute,
		Logger:            logger,
	})

	session := &console.Session{
		In:     os.Stdin,
		Out:    os.Stdout,
		Source: client,
		Now:    time.Now,
		Logger: logger,
	}
	return session.Run(ctx)
}
