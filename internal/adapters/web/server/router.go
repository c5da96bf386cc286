package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lcalzada-xor/sentinel/internal/adapters/web/middleware"
)

// SetupRoutes builds the dashboard routing table. All /api routes are
// read-only and sit behind the optional API-key middleware.
func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.APIKeyMiddleware(s.Config.APIKeyHash))

	api.HandleFunc("/alerts", s.AlertsHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/alerts/{id}", s.AlertsHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/alerts/{id}/pdf", s.AlertsHandler.HandlePDF).Methods(http.MethodGet)

	api.HandleFunc("/audit-logs", s.AuditHandler.HandleGetLogs).Methods(http.MethodGet)
	api.HandleFunc("/scans", s.ScansHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/responses/{alertID}", s.ResponsesHandler.HandleForAlert).Methods(http.MethodGet)

	api.HandleFunc("/reports/exposure", s.ReportHandler.HandleExposureReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/exposure/pdf", s.ReportHandler.HandleExposureReportPDF).Methods(http.MethodGet)

	api.HandleFunc("/config", s.ConfigHandler.HandleGetConfig).Methods(http.MethodGet)

	// Live alert stream. Browser WebSocket clients cannot send auth headers,
	// so the stream sits outside the API-key middleware; origins are checked
	// by the upgrader instead.
	r.HandleFunc("/ws", s.WSManager.HandleWebSocket)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
