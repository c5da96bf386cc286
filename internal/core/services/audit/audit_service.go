package audit

import (
	"context"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
)

// Service records automated decisions through the append-only audit log.
type Service struct {
	log ports.AuditLogger
}

var _ ports.AuditService = (*Service)(nil)

// NewService creates an audit service over the given logger.
func NewService(log ports.AuditLogger) *Service {
	return &Service{log: log}
}

// Record validates and appends one audit entry.
func (s *Service) Record(ctx context.Context, actor string, action domain.AuditAction, auditCtx map[string]string) error {
	// Domain factory enforces the actor/action invariants.
	entry, err := domain.NewAuditEntry(actor, action, auditCtx)
	if err != nil {
		return err
	}
	return s.log.Append(*entry)
}

// Entries retrieves historical audit records.
func (s *Service) Entries(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return s.log.Load(limit)
}
