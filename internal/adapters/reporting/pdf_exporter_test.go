package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

func TestExportExposureReport(t *testing.T) {
	report := &domain.ExposureReport{
		ID:          "r-1",
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		TotalAlerts: 2,
		BySeverity: map[domain.Severity]int{
			domain.SeverityLow:      0,
			domain.SeverityMedium:   1,
			domain.SeverityHigh:     1,
			domain.SeverityCritical: 0,
		},
		AverageRisk:  4.88,
		AnomalyCount: 1,
		TopRisks: []domain.AlertSummary{
			{ID: "a-1", Severity: domain.SeverityHigh, Title: "High risk exposure detected", RiskScore: 5.5, RelatedIP: "10.0.0.5"},
			{ID: "a-2", Severity: domain.SeverityMedium, Title: "Medium risk exposure detected", RiskScore: 4.25},
		},
		Recommendations: []string{
			"High-risk services detected: patch or disable services with known CVEs within the current change window.",
		},
	}

	data, err := NewPDFExporter().ExportExposureReport(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportAlert(t *testing.T) {
	alert := domain.AlertRecord{
		ID:                "a-1",
		GeneratedAt:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Severity:          domain.SeverityMedium,
		Title:             "Medium risk exposure detected",
		Description:       "baseline established from first observation",
		RelatedIP:         "10.0.0.5",
		RecommendedAction: "Review automated response and validate mitigation",
		Analysis: domain.AnalysisResult{
			RiskScore: 4.25,
			Insights: []domain.AnomalyInsight{
				{Feature: "high_risk", Contribution: 0.5, Description: "ports running services with known CVEs"},
				{Feature: "average_port", Contribution: 0.3, Description: "mean open port number"},
			},
		},
	}

	data, err := NewPDFExporter().ExportAlert(alert)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportAlertWithoutOptionalFields(t *testing.T) {
	alert := domain.AlertRecord{
		ID:          "a-2",
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Severity:    domain.SeverityLow,
		Title:       "Low risk exposure detected",
		Description: "Within learned baseline",
	}

	data, err := NewPDFExporter().ExportAlert(alert)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
