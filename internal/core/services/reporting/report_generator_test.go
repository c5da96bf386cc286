package reporting

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// staticRepo serves a fixed alert list.
type staticRepo struct {
	alerts []domain.AlertRecord
	err    error
}

func (r *staticRepo) Save(domain.AlertRecord) error { return nil }

func (r *staticRepo) Get(string) (domain.AlertRecord, error) {
	return domain.AlertRecord{}, errors.New("not implemented")
}

func (r *staticRepo) List() ([]domain.AlertRecord, error) {
	return r.alerts, r.err
}

func reportAlert(id string, severity domain.Severity, risk float64, anomaly bool) domain.AlertRecord {
	return domain.AlertRecord{
		ID:          id,
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Severity:    severity,
		Title:       severity.Title() + " risk exposure detected",
		Analysis: domain.AnalysisResult{
			RiskScore:   risk,
			AnomalyFlag: anomaly,
		},
	}
}

func TestGenerateAggregates(t *testing.T) {
	repo := &staticRepo{alerts: []domain.AlertRecord{
		reportAlert("a-1", domain.SeverityCritical, 8.5, true),
		reportAlert("a-2", domain.SeverityMedium, 4.25, false),
		reportAlert("a-3", domain.SeverityMedium, 3.5, false),
		reportAlert("a-4", domain.SeverityLow, 1.0, false),
	}}
	generator := NewExposureReportGenerator(repo)

	report, err := generator.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalAlerts)
	assert.Equal(t, 1, report.BySeverity[domain.SeverityCritical])
	assert.Equal(t, 0, report.BySeverity[domain.SeverityHigh])
	assert.Equal(t, 2, report.BySeverity[domain.SeverityMedium])
	assert.Equal(t, 1, report.BySeverity[domain.SeverityLow])
	assert.Equal(t, 1, report.AnomalyCount)
	assert.Equal(t, 4.31, report.AverageRisk)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestGenerateRanksTopRisks(t *testing.T) {
	var alerts []domain.AlertRecord
	for i := 0; i < 7; i++ {
		alerts = append(alerts, reportAlert(fmt.Sprintf("a-%d", i), domain.SeverityMedium, float64(i), false))
	}
	generator := NewExposureReportGenerator(&staticRepo{alerts: alerts})

	report, err := generator.Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, report.TopRisks, 5)
	assert.Equal(t, "a-6", report.TopRisks[0].ID)
	assert.Equal(t, 6.0, report.TopRisks[0].RiskScore)
	for i := 1; i < len(report.TopRisks); i++ {
		assert.GreaterOrEqual(t, report.TopRisks[i-1].RiskScore, report.TopRisks[i].RiskScore)
	}
}

func TestGenerateEmptyHistory(t *testing.T) {
	generator := NewExposureReportGenerator(&staticRepo{})

	report, err := generator.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalAlerts)
	assert.Equal(t, 0.0, report.AverageRisk)
	assert.Empty(t, report.TopRisks)
	require.Len(t, report.Recommendations, 1)
	assert.Contains(t, report.Recommendations[0], "within the learned baseline")
}

func TestGeneratePropagatesRepositoryError(t *testing.T) {
	generator := NewExposureReportGenerator(&staticRepo{err: errors.New("disk gone")})

	_, err := generator.Generate(context.Background())
	assert.Error(t, err)
}

func TestRecommendationsByUrgency(t *testing.T) {
	engine := NewRecommendationEngine()

	recs := engine.Recommendations(map[domain.Severity]int{
		domain.SeverityCritical: 1,
		domain.SeverityHigh:     2,
		domain.SeverityMedium:   1,
	}, 3)

	require.Len(t, recs, 4)
	assert.Contains(t, recs[0], "Critical")
	assert.Contains(t, recs[1], "High-risk")
	assert.Contains(t, recs[2], "medium-severity")
	assert.Contains(t, recs[3], "drift")
}
