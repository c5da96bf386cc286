package domain

import "time"

// ExposureReport is an executive-style aggregation of the persisted alert
// history, rendered by the dashboard as JSON or PDF.
type ExposureReport struct {
	ID              string           `json:"id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	TotalAlerts     int              `json:"total_alerts"`
	BySeverity      map[Severity]int `json:"by_severity"`
	AverageRisk     float64          `json:"average_risk"`
	AnomalyCount    int              `json:"anomaly_count"`
	TopRisks        []AlertSummary   `json:"top_risks"`
	Recommendations []string         `json:"recommendations"`
}
