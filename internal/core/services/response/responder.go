package response

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
	"github.com/lcalzada-xor/sentinel/internal/telemetry"
)

// Gate invokes the simulated remediation actions for a triggered alert.
// Each performed action leaves a uniquely named snapshot artifact and exactly
// one audit entry with the automation actor.
type Gate struct {
	dir   string
	audit ports.AuditService
	now   func() time.Time
}

var _ ports.Responder = (*Gate)(nil)

// NewGate creates a response gate writing snapshots under dir.
func NewGate(dir string, audit ports.AuditService) *Gate {
	return &Gate{dir: dir, audit: audit, now: time.Now}
}

// Respond runs block-IP, send-email and create-ticket in that fixed order.
// The gate itself (severity check) is the caller's concern; any I/O failure
// here is fatal for the cycle.
func (g *Gate) Respond(ctx context.Context, alert domain.AlertRecord) error {
	if err := g.blockIP(ctx, alert); err != nil {
		return err
	}
	if err := g.sendEmail(ctx, alert); err != nil {
		return err
	}
	return g.createTicket(ctx, alert)
}

// blockIP simulates a network-level block for the offending IP. A missing
// related IP makes this a no-op: no snapshot, no audit entry.
func (g *Gate) blockIP(ctx context.Context, alert domain.AlertRecord) error {
	if alert.RelatedIP == "" {
		return nil
	}
	payload := map[string]string{
		"timestamp": g.now().UTC().Format(time.RFC3339),
		"action":    string(domain.ActionBlockIP),
		"ip":        alert.RelatedIP,
	}
	auditCtx := map[string]string{
		"ip":       alert.RelatedIP,
		"alert_id": alert.ID,
	}
	return g.perform(ctx, alert, domain.ActionBlockIP, "block", payload, auditCtx)
}

func (g *Gate) sendEmail(ctx context.Context, alert domain.AlertRecord) error {
	payload := map[string]string{
		"timestamp": g.now().UTC().Format(time.RFC3339),
		"action":    string(domain.ActionSendEmail),
		"subject":   alert.Title,
		"severity":  string(alert.Severity),
	}
	auditCtx := map[string]string{
		"alert_id": alert.ID,
		"subject":  alert.Title,
	}
	return g.perform(ctx, alert, domain.ActionSendEmail, "email", payload, auditCtx)
}

func (g *Gate) createTicket(ctx context.Context, alert domain.AlertRecord) error {
	payload := map[string]string{
		"timestamp": g.now().UTC().Format(time.RFC3339),
		"action":    string(domain.ActionCreateTicket),
		"title":     alert.Title,
	}
	auditCtx := map[string]string{
		"alert_id": alert.ID,
		"title":    alert.Title,
	}
	return g.perform(ctx, alert, domain.ActionCreateTicket, "ticket", payload, auditCtx)
}

// perform writes the snapshot artifact then appends the audit entry. A
// failed snapshot write never fabricates an audit record.
func (g *Gate) perform(ctx context.Context, alert domain.AlertRecord, action domain.AuditAction, suffix string, payload, auditCtx map[string]string) error {
	if err := g.writeSnapshot(alert.ID, suffix, payload); err != nil {
		return err
	}
	if err := g.audit.Record(ctx, domain.ActorAutomation, action, auditCtx); err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	telemetry.ResponseActionsTotal.WithLabelValues(string(action)).Inc()
	return nil
}

func (g *Gate) writeSnapshot(alertID, suffix string, payload map[string]string) error {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return fmt.Errorf("create responses directory: %w", err)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", suffix, err)
	}
	path := filepath.Join(g.dir, fmt.Sprintf("%s_%s.json", alertID, suffix))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s snapshot: %w", suffix, err)
	}
	return nil
}
