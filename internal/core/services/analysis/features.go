package analysis

import "github.com/lcalzada-xor/sentinel/internal/core/domain"

// Feature dimension names, in schema order.
const (
	FeatureTotalPorts        = "total_ports"
	FeatureUniqueServices    = "unique_services"
	FeatureHighRisk          = "high_risk"
	FeatureOpenCriticalPorts = "open_critical_ports"
	FeatureAveragePort       = "average_port"
)

// FeatureNames is the canonical dimension-name list of the current schema.
var FeatureNames = []string{
	FeatureTotalPorts,
	FeatureUniqueServices,
	FeatureHighRisk,
	FeatureOpenCriticalPorts,
	FeatureAveragePort,
}

// criticalPorts are the services most commonly targeted when exposed.
var criticalPorts = map[int]struct{}{
	22:   {},
	80:   {},
	443:  {},
	3389: {},
	3306: {},
}

// Extract turns a scan observation into the fixed-length feature vector.
// Pure and deterministic; an observation with zero findings yields an
// all-zero vector rather than an error.
func Extract(obs domain.ScanObservation) domain.FeatureVector {
	services := make(map[string]struct{})
	var highRisk, openCritical int
	var portSum float64

	for _, f := range obs.Findings {
		services[f.Service] = struct{}{}
		if f.HasKnownVulnerabilities() {
			highRisk++
		}
		if _, ok := criticalPorts[f.Port]; ok {
			openCritical++
		}
		portSum += float64(f.Port)
	}

	avgPort := 0.0
	if len(obs.Findings) > 0 {
		avgPort = portSum / float64(len(obs.Findings))
	}

	return domain.FeatureVector{
		Names: append([]string(nil), FeatureNames...),
		Values: []float64{
			float64(len(obs.Findings)),
			float64(len(services)),
			float64(highRisk),
			float64(openCritical),
			avgPort,
		},
	}
}
