package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
)

// PDFAlertExporter renders one alert to PDF.
type PDFAlertExporter interface {
	ExportAlert(alert domain.AlertRecord) ([]byte, error)
}

// AlertsHandler serves the persisted alert artifacts and their catalog.
type AlertsHandler struct {
	Repo     ports.AlertRepository
	Index    ports.AlertIndex // nil when the catalog is disabled
	Exporter PDFAlertExporter
}

// NewAlertsHandler creates a new AlertsHandler.
func NewAlertsHandler(repo ports.AlertRepository, index ports.AlertIndex, exporter PDFAlertExporter) *AlertsHandler {
	return &AlertsHandler{Repo: repo, Index: index, Exporter: exporter}
}

// HandleList returns alert summaries, newest first. Supports ?severity= and
// ?limit= filters; uses the catalog when available and falls back to the
// artifact directory otherwise.
func (h *AlertsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := domain.AlertFilter{
		Severity: domain.Severity(r.URL.Query().Get("severity")),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	summaries, err := h.listSummaries(r, filter)
	if err != nil {
		log.Printf("Failed to list alerts: %v", err)
		http.Error(w, "Failed to list alerts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{"alerts": summaries})
}

func (h *AlertsHandler) listSummaries(r *http.Request, filter domain.AlertFilter) ([]domain.AlertSummary, error) {
	if h.Index != nil {
		return h.Index.Query(r.Context(), filter)
	}

	alerts, err := h.Repo.List()
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.AlertSummary, 0, len(alerts))
	for _, a := range alerts {
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		summaries = append(summaries, a.Summary())
		if filter.Limit > 0 && len(summaries) >= filter.Limit {
			break
		}
	}
	return summaries, nil
}

// HandleGet returns the full alert record.
func (h *AlertsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	alert, err := h.Repo.Get(id)
	if err != nil {
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	}
	writeJSON(w, alert)
}

// HandlePDF streams the alert rendered as PDF.
func (h *AlertsHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	alert, err := h.Repo.Get(id)
	if err != nil {
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	}

	data, err := h.Exporter.ExportAlert(alert)
	if err != nil {
		log.Printf("Failed to export alert %s: %v", id, err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=alert_%s.pdf", id))
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
