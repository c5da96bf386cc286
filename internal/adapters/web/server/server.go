package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/sentinel/internal/adapters/reporting"
	"github.com/lcalzada-xor/sentinel/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/sentinel/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/sentinel/internal/config"
	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
	reportingService "github.com/lcalzada-xor/sentinel/internal/core/services/reporting"
)

// Server is the read-only dashboard over the persisted pipeline artifacts.
type Server struct {
	Config *config.Config

	WSManager        *websocket.WSManager
	AlertsHandler    *handlers.AlertsHandler
	AuditHandler     *handlers.AuditHandler
	ScansHandler     *handlers.ScansHandler
	ResponsesHandler *handlers.ResponsesHandler
	ReportHandler    *handlers.ReportHandler
	ConfigHandler    *handlers.ConfigHandler

	srv *http.Server
}

// NewServer wires the dashboard handlers over their data sources. index may
// be nil when the catalog is disabled.
func NewServer(
	cfg *config.Config,
	alerts ports.AlertRepository,
	index ports.AlertIndex,
	auditSvc ports.AuditService,
) *Server {
	exporter := reporting.NewPDFExporter()
	generator := reportingService.NewExposureReportGenerator(alerts)

	return &Server{
		Config:           cfg,
		WSManager:        websocket.NewWSManager(),
		AlertsHandler:    handlers.NewAlertsHandler(alerts, index, exporter),
		AuditHandler:     handlers.NewAuditHandler(auditSvc),
		ScansHandler:     handlers.NewScansHandler(cfg.ScansDir()),
		ResponsesHandler: handlers.NewResponsesHandler(cfg.ResponsesDir()),
		ReportHandler:    handlers.NewReportHandler(generator, exporter),
		ConfigHandler:    handlers.NewConfigHandler(cfg),
	}
}

// Run starts the server and blocks until the context is canceled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(s)

	instrumented := otelhttp.NewHandler(handler, "sentinel-dashboard")

	s.srv = &http.Server{
		Addr:              s.Config.Addr,
		Handler:           instrumented,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("Dashboard server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Dashboard server shutdown error: %v", err)
		}
	}()

	log.Printf("Dashboard server listening on %s", s.Config.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// BroadcastAlert pushes an alert to all connected dashboard clients.
func (s *Server) BroadcastAlert(alert domain.AlertRecord) {
	s.WSManager.BroadcastAlert(alert)
}
