package analysis

import (
	"math"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
)

// Fixed anomaly reasons. The dashboard and alert descriptions key on these
// exact strings.
const (
	ReasonBaselineEstablished = "baseline established from first observation"
	ReasonAnomalous           = "Anomalous network exposure detected"
	ReasonWithinBaseline      = "Within learned baseline"
)

// Tuning constants of the statistical variant. These are preserved
// configuration constants, not derived from labeled ground truth.
const (
	anomalyThreshold = 2.5

	weightHighRisk     = 2.5
	weightCritical     = 1.5
	weightTotalPorts   = 0.25
	portBaselineOffset = 1024.0
	portBaselineScale  = 200.0

	driftWeight = 0.5
	driftCap    = 4.0

	deviationWeight = 1.5
	deviationCap    = 4.0

	maxRiskScore = 10.0
)

// StatisticalAnalyzer is the z-score based anomaly-model variant. It carries
// no external model dependency; the baseline history is the entire model
// state.
type StatisticalAnalyzer struct{}

var _ ports.Analyzer = (*StatisticalAnalyzer)(nil)

// NewStatisticalAnalyzer creates the statistical variant.
func NewStatisticalAnalyzer() *StatisticalAnalyzer {
	return &StatisticalAnalyzer{}
}

// Evaluate computes the mean per-dimension z-score of the current vector
// against the baseline and derives the weighted risk score.
func (a *StatisticalAnalyzer) Evaluate(current domain.FeatureVector, history domain.BaselineHistory) domain.Evaluation {
	if history.Empty() {
		return domain.Evaluation{
			AnomalyFlag: false,
			RiskScore:   a.riskScore(current, nil, 0),
			Reason:      ReasonBaselineEstablished,
			Deviation:   0,
		}
	}

	means, stddevs := baselineStats(history)
	deviation := meanZScore(current.Values, means, stddevs)

	flag := deviation > anomalyThreshold
	reason := ReasonWithinBaseline
	if flag {
		reason = ReasonAnomalous
	}

	return domain.Evaluation{
		AnomalyFlag:  flag,
		RiskScore:    a.riskScore(current, means, deviation),
		Reason:       reason,
		Deviation:    deviation,
		BaselineMean: means,
	}
}

// riskScore is the weighted heuristic combining raw findings severity with
// baseline drift and the statistical anomaly signal, clamped to [0,10].
func (a *StatisticalAnalyzer) riskScore(current domain.FeatureVector, baselineMean []float64, deviation float64) float64 {
	score := current.Value(FeatureHighRisk)*weightHighRisk +
		current.Value(FeatureOpenCriticalPorts)*weightCritical +
		current.Value(FeatureTotalPorts)*weightTotalPorts +
		math.Max(0, (current.Value(FeatureAveragePort)-portBaselineOffset)/portBaselineScale)

	if len(baselineMean) == len(current.Values) && len(baselineMean) > 0 {
		var drift float64
		for i, v := range current.Values {
			drift += math.Abs(v - baselineMean[i])
		}
		drift /= float64(len(current.Values))
		score += math.Min(driftCap, drift*driftWeight)
	}

	score += math.Min(deviationCap, deviation*deviationWeight)

	return math.Min(maxRiskScore, math.Max(0, score))
}

// baselineStats returns the per-dimension mean and population standard
// deviation across all stored vectors.
func baselineStats(history domain.BaselineHistory) (means, stddevs []float64) {
	dims := len(history.FeatureNames)
	if dims == 0 && len(history.Vectors) > 0 {
		dims = len(history.Vectors[0])
	}
	means = make([]float64, dims)
	stddevs = make([]float64, dims)
	n := float64(len(history.Vectors))
	if n == 0 {
		return means, stddevs
	}

	for _, vec := range history.Vectors {
		for i := 0; i < dims && i < len(vec); i++ {
			means[i] += vec[i]
		}
	}
	for i := range means {
		means[i] /= n
	}

	for _, vec := range history.Vectors {
		for i := 0; i < dims && i < len(vec); i++ {
			d := vec[i] - means[i]
			stddevs[i] += d * d
		}
	}
	for i := range stddevs {
		stddevs[i] = math.Sqrt(stddevs[i] / n)
	}
	return means, stddevs
}

// meanZScore averages per-dimension z-scores. Zero-variance dimensions never
// contribute to the signal.
func meanZScore(values, means, stddevs []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for i, v := range values {
		if i >= len(means) || i >= len(stddevs) || stddevs[i] == 0 {
			continue
		}
		sum += math.Abs(v-means[i]) / stddevs[i]
	}
	return sum / float64(len(values))
}
