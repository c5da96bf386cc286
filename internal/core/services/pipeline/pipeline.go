package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
	"github.com/lcalzada-xor/sentinel/internal/core/services/analysis"
	"github.com/lcalzada-xor/sentinel/internal/telemetry"
)

// recommendedAction is the fixed advisory attached to every alert.
const recommendedAction = "Review automated response and validate mitigation"

// Pipeline sequences one full analysis-and-decision cycle:
// scan -> features -> anomaly evaluation -> alert -> persistence -> audit ->
// gated response. A cycle either completes or fails outright; there is no
// retry state.
type Pipeline struct {
	scanner   ports.Scanner
	analyzer  ports.Analyzer
	baseline  ports.BaselineStore
	alerts    ports.AlertRepository
	index     ports.AlertIndex
	audit     ports.AuditService
	responder ports.Responder
	tracer    trace.Tracer

	// onAlert, when set, observes every generated alert (dashboard
	// broadcast). It must not block.
	onAlert func(domain.AlertRecord)
}

// New wires a pipeline from its collaborators. index may be nil when the
// catalog is disabled.
func New(
	scanner ports.Scanner,
	analyzer ports.Analyzer,
	baseline ports.BaselineStore,
	alerts ports.AlertRepository,
	index ports.AlertIndex,
	auditSvc ports.AuditService,
	responder ports.Responder,
) *Pipeline {
	return &Pipeline{
		scanner:   scanner,
		analyzer:  analyzer,
		baseline:  baseline,
		alerts:    alerts,
		index:     index,
		audit:     auditSvc,
		responder: responder,
		tracer:    otel.Tracer("sentinel/pipeline"),
	}
}

// SetAlertObserver registers a hook invoked with every generated alert.
func (p *Pipeline) SetAlertObserver(fn func(domain.AlertRecord)) {
	p.onAlert = fn
}

// RunCycle executes one pipeline cycle and returns the persisted alert.
// Any failure is fatal for the cycle and propagated to the caller; a future
// cycle is independent and starts from a fresh baseline read.
func (p *Pipeline) RunCycle(ctx context.Context) (domain.AlertRecord, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.cycle")
	defer span.End()

	alert, err := p.runCycle(ctx, span)
	if err != nil {
		telemetry.CyclesTotal.WithLabelValues("error").Inc()
		return domain.AlertRecord{}, err
	}
	telemetry.CyclesTotal.WithLabelValues("success").Inc()
	return alert, nil
}

func (p *Pipeline) runCycle(ctx context.Context, span trace.Span) (domain.AlertRecord, error) {
	obs, err := p.scanner.Scan(ctx)
	if err != nil {
		return domain.AlertRecord{}, fmt.Errorf("scan: %w", err)
	}
	span.AddEvent("scan acquired", trace.WithAttributes(
		attribute.Int("findings", len(obs.Findings)),
	))

	features := analysis.Extract(obs)
	span.AddEvent("features extracted")

	history, err := p.baseline.Load()
	if err != nil {
		return domain.AlertRecord{}, fmt.Errorf("load baseline: %w", err)
	}

	eval := p.analyzer.Evaluate(features, history)
	insights := p.analyzer.Explain(features, eval.BaselineMean)
	span.AddEvent("anomaly evaluated", trace.WithAttributes(
		attribute.Float64("risk_score", eval.RiskScore),
		attribute.Bool("anomaly", eval.AnomalyFlag),
	))
	if eval.AnomalyFlag {
		telemetry.AnomaliesTotal.Inc()
	}

	result := domain.AnalysisResult{
		Observation:   obs,
		RiskScore:     eval.RiskScore,
		AnomalyFlag:   eval.AnomalyFlag,
		AnomalyReason: eval.Reason,
		Insights:      insights,
	}
	alert := buildAlert(result)
	span.SetAttributes(
		attribute.String("alert.id", alert.ID),
		attribute.String("alert.severity", string(alert.Severity)),
	)

	// Persist model state first: the baseline grows by exactly one vector
	// per cycle, and its name list is finalized to the extractor's schema.
	if err := history.Append(features); err != nil {
		return domain.AlertRecord{}, fmt.Errorf("append baseline: %w", err)
	}
	if err := p.baseline.Save(history); err != nil {
		return domain.AlertRecord{}, fmt.Errorf("save baseline: %w", err)
	}

	if err := p.alerts.Save(alert); err != nil {
		return domain.AlertRecord{}, fmt.Errorf("persist alert: %w", err)
	}

	// Catalog indexing is best-effort: the JSON artifact above is canonical.
	if p.index != nil {
		if err := p.index.Index(ctx, alert); err != nil {
			slog.Warn("alert catalog indexing failed", "alert_id", alert.ID, "error", err)
		}
	}

	if err := p.audit.Record(ctx, domain.ActorEngine, domain.ActionGeneratedAlert, map[string]string{
		"alert_id": alert.ID,
		"severity": string(alert.Severity),
	}); err != nil {
		return domain.AlertRecord{}, fmt.Errorf("audit alert generation: %w", err)
	}
	telemetry.AlertsTotal.WithLabelValues(string(alert.Severity)).Inc()

	if alert.Severity.TriggersResponse() {
		if err := p.responder.Respond(ctx, alert); err != nil {
			return domain.AlertRecord{}, fmt.Errorf("automated response: %w", err)
		}
		span.AddEvent("response gated")
	}

	if p.onAlert != nil {
		p.onAlert(alert)
	}
	return alert, nil
}

// buildAlert classifies the risk score and assembles the persisted record.
func buildAlert(result domain.AnalysisResult) domain.AlertRecord {
	severity := domain.SeverityForScore(result.RiskScore)

	relatedIP := ""
	if len(result.Observation.Findings) > 0 {
		relatedIP = result.Observation.Findings[0].Host
	}

	return domain.AlertRecord{
		ID:                uuid.New().String(),
		GeneratedAt:       time.Now().UTC(),
		Severity:          severity,
		Title:             fmt.Sprintf("%s risk exposure detected", severity.Title()),
		Description:       result.AnomalyReason,
		RelatedIP:         relatedIP,
		RecommendedAction: recommendedAction,
		Analysis:          result,
	}
}
