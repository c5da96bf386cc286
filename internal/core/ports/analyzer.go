package ports

import "github.com/lcalzada-xor/sentinel/internal/core/domain"

// Analyzer is the capability interface for anomaly-model variants. Variants
// are selected at configuration time; the statistical heuristic is the
// default implementation.
type Analyzer interface {
	// Evaluate computes the anomaly signal and risk score for the current
	// vector against the baseline history. Pure: identical inputs yield
	// identical outputs.
	Evaluate(current domain.FeatureVector, history domain.BaselineHistory) domain.Evaluation

	// Explain ranks feature dimensions by their contribution to the anomaly
	// signal, most explanatory first. baselineMean may be nil on cold start.
	Explain(current domain.FeatureVector, baselineMean []float64) []domain.AnomalyInsight
}
