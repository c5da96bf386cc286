package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// ReportGenerator builds an exposure report from the persisted alerts.
type ReportGenerator interface {
	Generate(ctx context.Context) (*domain.ExposureReport, error)
}

// PDFReportExporter renders an exposure report to PDF.
type PDFReportExporter interface {
	ExportExposureReport(report *domain.ExposureReport) ([]byte, error)
}

// ReportHandler serves exposure reports as JSON or PDF.
type ReportHandler struct {
	Generator ReportGenerator
	Exporter  PDFReportExporter
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(generator ReportGenerator, exporter PDFReportExporter) *ReportHandler {
	return &ReportHandler{Generator: generator, Exporter: exporter}
}

// HandleExposureReport returns the report as JSON.
func (h *ReportHandler) HandleExposureReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Generator.Generate(r.Context())
	if err != nil {
		log.Printf("Failed to generate report: %v", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

// HandleExposureReportPDF streams the report rendered as PDF.
func (h *ReportHandler) HandleExposureReportPDF(w http.ResponseWriter, r *http.Request) {
	report, err := h.Generator.Generate(r.Context())
	if err != nil {
		log.Printf("Failed to generate report: %v", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	data, err := h.Exporter.ExportExposureReport(report)
	if err != nil {
		log.Printf("Failed to export report: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("exposure_report_%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(data)
}
