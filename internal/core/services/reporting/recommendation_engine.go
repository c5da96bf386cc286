package reporting

import "github.com/lcalzada-xor/sentinel/internal/core/domain"

// RecommendationEngine derives fixed remediation guidance from the alert
// distribution.
type RecommendationEngine struct{}

// NewRecommendationEngine creates a recommendation engine.
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// Recommendations returns guidance ordered by urgency.
func (r *RecommendationEngine) Recommendations(bySeverity map[domain.Severity]int, anomalies int) []string {
	var recs []string

	if bySeverity[domain.SeverityCritical] > 0 {
		recs = append(recs, "Critical exposures present: isolate the affected hosts and review the automated blocks immediately.")
	}
	if bySeverity[domain.SeverityHigh] > 0 {
		recs = append(recs, "High-risk services detected: patch or disable services with known CVEs within the current change window.")
	}
	if bySeverity[domain.SeverityMedium] > 0 {
		recs = append(recs, "Review medium-severity alerts and confirm that the simulated tickets reached the remediation queue.")
	}
	if anomalies > 0 {
		recs = append(recs, "Statistical drift from the learned baseline was observed: validate recent changes to the scanned network.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Exposure is within the learned baseline. Keep the scan cadence to maintain baseline quality.")
	}
	return recs
}
