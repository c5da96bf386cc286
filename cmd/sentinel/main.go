package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/lcalzada-xor/sentinel/internal/app"
	"github.com/lcalzada-xor/sentinel/internal/config"
	"github.com/lcalzada-xor/sentinel/internal/telemetry"
)

// sentinel runs one analysis-and-decision pipeline cycle and prints the
// resulting alert record.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
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

	alert, err := application.RunCycle(context.Background())
	if err != nil {
		slog.Error("Pipeline cycle failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(alert, "", "  ")
	if err != nil {
		slog.Error("Failed to encode alert", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
