package domain

import "time"

// Severity classifies the risk score of an alert.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityForScore maps a risk score in [0,10] to a severity tag.
// Thresholds are inclusive lower bounds and exhaustive.
func SeverityForScore(score float64) Severity {
	switch {
	case score >= 7:
		return SeverityCritical
	case score >= 5:
		return SeverityHigh
	case score >= 3:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// TriggersResponse reports whether the severity gates automated response
// actions. Low severity never triggers automation.
func (s Severity) TriggersResponse() bool {
	switch s {
	case SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Title returns the severity with its first letter upper-cased, for use in
// alert titles.
func (s Severity) Title() string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// AnomalyInsight explains one feature dimension's contribution to the
// anomaly signal.
type AnomalyInsight struct {
	Feature      string  `json:"feature"`
	Contribution float64 `json:"contribution"`
	Description  string  `json:"description"`
}

// AnalysisResult bundles everything the anomaly model derived from one
// observation. Immutable once produced.
type AnalysisResult struct {
	Observation   ScanObservation  `json:"observation"`
	RiskScore     float64          `json:"risk_score"`
	AnomalyFlag   bool             `json:"anomaly_flag"`
	AnomalyReason string           `json:"anomaly_reason"`
	Insights      []AnomalyInsight `json:"insights"`
}

// AlertRecord is the persisted outcome of one pipeline cycle. Created once,
// persisted immediately, never mutated afterward.
type AlertRecord struct {
	ID                string         `json:"id"`
	GeneratedAt       time.Time      `json:"generated_at"`
	Severity          Severity       `json:"severity"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	RelatedIP         string         `json:"related_ip,omitempty"`
	RecommendedAction string         `json:"recommended_action,omitempty"`
	Analysis          AnalysisResult `json:"analysis"`
}

// AlertSummary is the catalog projection of an alert used by list queries.
type AlertSummary struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	RiskScore   float64   `json:"risk_score"`
	AnomalyFlag bool      `json:"anomaly_flag"`
	RelatedIP   string    `json:"related_ip,omitempty"`
}

// AlertFilter narrows catalog queries.
type AlertFilter struct {
	Severity Severity
	Limit    int
}

// Summary projects the full record into its catalog form.
func (a AlertRecord) Summary() AlertSummary {
	return AlertSummary{
		ID:          a.ID,
		GeneratedAt: a.GeneratedAt,
		Severity:    a.Severity,
		Title:       a.Title,
		RiskScore:   a.Analysis.RiskScore,
		AnomalyFlag: a.Analysis.AnomalyFlag,
		RelatedIP:   a.RelatedIP,
	}
}
