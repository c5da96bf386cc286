package ports

import (
	"context"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// AuditService handles the high-level business requirement for decision
// tracking.
type AuditService interface {
	// Record appends one audit entry for an automated decision.
	Record(ctx context.Context, actor string, action domain.AuditAction, auditCtx map[string]string) error

	// Entries retrieves historical audit records. limit <= 0 returns all.
	Entries(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// AuditLogger handles the low-level append-only persistence of audit data.
type AuditLogger interface {
	// Append writes one entry to the end of the log.
	Append(entry domain.AuditEntry) error

	// Load reads the log, skipping malformed records individually. limit <= 0
	// returns all entries, otherwise only the last limit records.
	Load(limit int) ([]domain.AuditEntry, error)
}
