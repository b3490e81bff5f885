package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rakesh-27-git/WellnessSpace/internal/app"
	"github.com/Rakesh-27-git/WellnessSpace/internal/config"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/httputil"
	"github.com/Rakesh-27-git/WellnessSpace/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize structured logger.
	log := logger.New("wellnessspace", cfg.LogLevel)
	log.Info("starting wellnessspace server",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTPPort),
	)

	// Stack traces in error responses are a development-only aid.
	httputil.SetDebug(cfg.Environment == "development")

	// Create the application with all dependencies wired.
	application, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	// Create a context that is canceled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Run the application. This blocks until shutdown.
	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("run application: %w", err)
	}

	log.Info("wellnessspace server stopped")
	return nil
}
