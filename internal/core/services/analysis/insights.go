package analysis

import (
	"math"
	"sort"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// featureDescriptions maps known dimension names to their human-readable
// explanation. Unknown names fall back to the raw name.
var featureDescriptions = map[string]string{
	FeatureTotalPorts:        "Total number of ports discovered during the scan.",
	FeatureUniqueServices:    "Diversity of services exposed across hosts.",
	FeatureHighRisk:          "Number of services associated with known CVEs.",
	FeatureOpenCriticalPorts: "Sensitive ports detected (SSH, HTTP, HTTPS, RDP, MySQL).",
	FeatureAveragePort:       "Mean of the open ports, a proxy for service maturity.",
}

// Explain ranks feature dimensions by their contribution to the anomaly
// signal, descending by absolute contribution. Ties keep the original
// dimension order.
func (a *StatisticalAnalyzer) Explain(current domain.FeatureVector, baselineMean []float64) []domain.AnomalyInsight {
	contributions := contributionsFor(current, baselineMean)

	insights := make([]domain.AnomalyInsight, 0, len(current.Names))
	for i, name := range current.Names {
		desc, ok := featureDescriptions[name]
		if !ok {
			desc = name
		}
		insights = append(insights, domain.AnomalyInsight{
			Feature:      name,
			Contribution: contributions[i],
			Description:  desc,
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return math.Abs(insights[i].Contribution) > math.Abs(insights[j].Contribution)
	})
	return insights
}

// contributionsFor explains the direction of drift against the baseline
// mean when one exists, and falls back to relative magnitude on cold start.
func contributionsFor(current domain.FeatureVector, baselineMean []float64) []float64 {
	contributions := make([]float64, len(current.Values))

	if len(baselineMean) == len(current.Values) && len(baselineMean) > 0 {
		for i, v := range current.Values {
			contributions[i] = v - baselineMean[i]
		}
		return contributions
	}

	var total float64
	for _, v := range current.Values {
		total += math.Abs(v)
	}
	if total == 0 {
		return contributions
	}
	for i, v := range current.Values {
		contributions[i] = math.Abs(v) / total
	}
	return contributions
}
