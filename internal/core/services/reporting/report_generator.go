package reporting

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
)

// defaultTopRisks bounds the ranked risk list in a report.
const defaultTopRisks = 5

// ExposureReportGenerator aggregates the persisted alert history into an
// executive-style summary for the dashboard.
type ExposureReportGenerator struct {
	alerts      ports.AlertRepository
	recommender *RecommendationEngine
}

// NewExposureReportGenerator creates a generator over the alert repository.
func NewExposureReportGenerator(alerts ports.AlertRepository) *ExposureReportGenerator {
	return &ExposureReportGenerator{
		alerts:      alerts,
		recommender: NewRecommendationEngine(),
	}
}

// Generate builds a report from all persisted alerts.
func (g *ExposureReportGenerator) Generate(ctx context.Context) (*domain.ExposureReport, error) {
	alerts, err := g.alerts.List()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}

	bySeverity := map[domain.Severity]int{
		domain.SeverityLow:      0,
		domain.SeverityMedium:   0,
		domain.SeverityHigh:     0,
		domain.SeverityCritical: 0,
	}
	var riskSum float64
	var anomalies int
	for _, a := range alerts {
		bySeverity[a.Severity]++
		riskSum += a.Analysis.RiskScore
		if a.Analysis.AnomalyFlag {
			anomalies++
		}
	}

	avgRisk := 0.0
	if len(alerts) > 0 {
		// Round to two decimals for display stability.
		avgRisk = math.Round(riskSum/float64(len(alerts))*100) / 100
	}

	topRisks := rankTopRisks(alerts, defaultTopRisks)

	return &domain.ExposureReport{
		ID:              uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		TotalAlerts:     len(alerts),
		BySeverity:      bySeverity,
		AverageRisk:     avgRisk,
		AnomalyCount:    anomalies,
		TopRisks:        topRisks,
		Recommendations: g.recommender.Recommendations(bySeverity, anomalies),
	}, nil
}

// rankTopRisks orders alerts by risk score descending and keeps the top n.
func rankTopRisks(alerts []domain.AlertRecord, n int) []domain.AlertSummary {
	summaries := make([]domain.AlertSummary, 0, len(alerts))
	for _, a := range alerts {
		summaries = append(summaries, a.Summary())
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].RiskScore > summaries[j].RiskScore
	})
	if len(summaries) > n {
		summaries = summaries[:n]
	}
	return summaries
}
