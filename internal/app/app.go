package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lcalzada-xor/sentinel/internal/adapters/scanner"
	"github.com/lcalzada-xor/sentinel/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/sentinel/internal/adapters/web/server"
	"github.com/lcalzada-xor/sentinel/internal/config"
	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
	"github.com/lcalzada-xor/sentinel/internal/core/services/analysis"
	auditService "github.com/lcalzada-xor/sentinel/internal/core/services/audit"
	"github.com/lcalzada-xor/sentinel/internal/core/services/pipeline"
	"github.com/lcalzada-xor/sentinel/internal/core/services/response"
	"github.com/lcalzada-xor/sentinel/internal/telemetry"
)

// Application is the facade wiring configuration, storage, services and the
// dashboard server.
type Application struct {
	Config       *config.Config
	Pipeline     *pipeline.Pipeline
	AuditService *auditService.Service
	WebServer    *webserver.Server

	catalog *storage.SQLiteCatalog
}

// New creates an Application and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}
	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	cfg := app.Config

	baseline := storage.NewFileBaselineStore(cfg.ModelStatePath)
	alerts := storage.NewFileAlertRepository(cfg.AlertsDir())
	auditLog := storage.NewFileAuditLog(cfg.AuditLogPath)
	app.AuditService = auditService.NewService(auditLog)

	var index ports.AlertIndex
	if cfg.CatalogPath != "" {
		catalog, err := storage.NewSQLiteCatalog(cfg.CatalogPath)
		if err != nil {
			// The catalog is a derived index; run without it.
			slog.Warn("alert catalog unavailable", "error", err)
		} else {
			app.catalog = catalog
			index = catalog
		}
	}

	probe := scanner.New(cfg.Targets, cfg.UseNmap, cfg.ScansDir())
	gate := response.NewGate(cfg.ResponsesDir(), app.AuditService)

	app.Pipeline = pipeline.New(
		probe,
		app.analyzer(),
		baseline,
		alerts,
		index,
		app.AuditService,
		gate,
	)

	app.WebServer = webserver.NewServer(cfg, alerts, index, app.AuditService)
	app.Pipeline.SetAlertObserver(app.WebServer.BroadcastAlert)

	return nil
}

// analyzer selects the model variant from configuration. Unknown variant
// names fall back to the statistical model rather than failing startup.
func (app *Application) analyzer() ports.Analyzer {
	switch app.Config.Model {
	case "", "statistical":
		return analysis.NewStatisticalAnalyzer()
	default:
		slog.Warn("unknown model variant, using statistical", "model", app.Config.Model)
		return analysis.NewStatisticalAnalyzer()
	}
}

// RunCycle executes one pipeline cycle.
func (app *Application) RunCycle(ctx context.Context) (domain.AlertRecord, error) {
	return app.Pipeline.RunCycle(ctx)
}

// Serve runs the dashboard server, optionally driving pipeline cycles on the
// configured interval, until the context is canceled.
func (app *Application) Serve(ctx context.Context) error {
	if app.Config.CycleInterval > 0 {
		go app.runCycles(ctx, app.Config.CycleInterval)
	}
	return app.WebServer.Run(ctx)
}

func (app *Application) runCycles(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			alert, err := app.Pipeline.RunCycle(ctx)
			if err != nil {
				slog.Error("pipeline cycle failed", "error", err)
				continue
			}
			slog.Info("pipeline cycle complete",
				"alert_id", alert.ID,
				"severity", alert.Severity,
				"risk_score", alert.Analysis.RiskScore,
			)
		}
	}
}

// Close releases long-lived resources.
func (app *Application) Close() error {
	if app.catalog != nil {
		return app.catalog.Close()
	}
	return nil
}
