package ports

import (
	"context"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// BaselineStore persists the durable model state across pipeline cycles.
type BaselineStore interface {
	// Load returns the stored history. A missing or unreadable state file is
	// the cold-start state (empty history, nil error), never a failure.
	Load() (domain.BaselineHistory, error)

	// Save durably writes the full history, replacing the previous state.
	// The state file is always a complete, self-consistent document.
	Save(history domain.BaselineHistory) error
}

// AlertRepository persists alert records as the canonical artifacts consumed
// by the dashboard.
type AlertRepository interface {
	Save(alert domain.AlertRecord) error
	Get(id string) (domain.AlertRecord, error)
	List() ([]domain.AlertRecord, error)
}

// AlertIndex is the derived, queryable catalog of alerts. Indexing is
// best-effort; the JSON artifacts remain the source of truth.
type AlertIndex interface {
	Index(ctx context.Context, alert domain.AlertRecord) error
	Query(ctx context.Context, filter domain.AlertFilter) ([]domain.AlertSummary, error)
}
