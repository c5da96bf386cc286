package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CyclesTotal counts pipeline cycles by outcome.
	CyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Name:      "pipeline_cycles_total",
			Help:      "Total number of pipeline cycles executed",
		},
		[]string{"result"},
	)

	// AnomaliesTotal counts cycles whose evaluation raised the anomaly flag.
	AnomaliesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Name:      "anomalies_total",
			Help:      "Total number of observations flagged as anomalous",
		},
	)

	// AlertsTotal counts generated alerts by severity.
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Name:      "alerts_total",
			Help:      "Total number of alerts generated",
		},
		[]string{"severity"},
	)

	// ResponseActionsTotal counts automated response actions by type.
	ResponseActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Name:      "response_actions_total",
			Help:      "Total number of automated response actions performed",
		},
		[]string{"action"},
	)

	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// Idempotent; safe to call from every entry point.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(CyclesTotal)
		prometheus.DefaultRegisterer.Register(AnomaliesTotal)
		prometheus.DefaultRegisterer.Register(AlertsTotal)
		prometheus.DefaultRegisterer.Register(ResponseActionsTotal)
	})
}
