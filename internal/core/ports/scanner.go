package ports

import (
	"context"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// Scanner produces one observation per pipeline cycle. How it is produced
// (real probe or deterministic simulation) is outside the core's contract.
type Scanner interface {
	Scan(ctx context.Context) (domain.ScanObservation, error)
}

// Responder decides which simulated remediation actions fire for a built
// alert and records each as an audited, persisted intent.
type Responder interface {
	Respond(ctx context.Context, alert domain.AlertRecord) error
}
