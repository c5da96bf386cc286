package domain

import (
	"errors"
	"time"
)

// AuditAction is a type-safe action identifier for the audit trail.
type AuditAction string

// Audited decision events.
const (
	ActionGeneratedAlert AuditAction = "generated_alert"
	ActionBlockIP        AuditAction = "block_ip"
	ActionSendEmail      AuditAction = "send_email"
	ActionCreateTicket   AuditAction = "create_ticket"
)

// Well-known audit actors.
const (
	ActorEngine     = "ai_engine"
	ActorAutomation = "automation"
)

// Domain errors.
var (
	ErrInvalidAction = errors.New("invalid audit action")
	ErrMissingActor  = errors.New("actor identification is required for auditing")
)

// AuditEntry records one automated decision. Entries are append-only and
// never rewritten.
type AuditEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Actor     string            `json:"actor"`
	Action    AuditAction       `json:"action"`
	Context   map[string]string `json:"context"`
}

// NewAuditEntry is the designated factory for valid audit entries.
func NewAuditEntry(actor string, action AuditAction, context map[string]string) (*AuditEntry, error) {
	if actor == "" {
		return nil, ErrMissingActor
	}
	if !isValidAction(action) {
		return nil, ErrInvalidAction
	}
	if context == nil {
		context = map[string]string{}
	}
	return &AuditEntry{
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Action:    action,
		Context:   context,
	}, nil
}

func isValidAction(action AuditAction) bool {
	switch action {
	case ActionGeneratedAlert, ActionBlockIP, ActionSendEmail, ActionCreateTicket:
		return true
	}
	return false
}
