package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lcalzada-xor/sentinel/internal/app"
	"github.com/lcalzada-xor/sentinel/internal/config"
	"github.com/lcalzada-xor/sentinel/internal/telemetry"
)

// sentinel-dashboard serves the read-only dashboard API over the persisted
// pipeline artifacts, optionally running cycles on an interval.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	shutdownTracer, err := telemetry.InitTracer()
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				slog.Error("Failed to shutdown tracer", "error", err)
			}
		}()
	}

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("Sentinel dashboard starting...", "addr", cfg.Addr)

	if err := application.Serve(ctx); err != nil {
		slog.Error("Dashboard server error", "error", err)
		cancel()
		os.Exit(1)
	}
}
