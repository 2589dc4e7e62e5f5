package ports

import (
	"context"
	"time"

	"fieldwork/internal/core/domain/model/kernel"
)

// EarningsCredit is one pending credit to a worker's running totals. A row is
// written in the same transaction that completes an assignment; the credit is
// applied to the worker right after commit, or swept up later by the
// reconciliation job when that post-commit step was lost.
type EarningsCredit struct {
	ID           kernel.UUID
	AssignmentID kernel.UUID
	WorkerID     kernel.UUID
	Amount       float64
	CreatedAt    time.Time
	AppliedAt    *time.Time
}

// EarningsOutboxRepository defines the persistence contract for pending
// earnings credits.
type EarningsOutboxRepository interface {
	// Add persists a new pending credit.
	Add(ctx context.Context, credit EarningsCredit) error

	// GetUnapplied retrieves up to limit credits that were created before
	// olderThan and have not been applied yet, oldest first.
	GetUnapplied(ctx context.Context, olderThan time.Time, limit int) ([]EarningsCredit, error)

	// MarkApplied stamps the credit as applied. Returns
	// errs.ObjectNotFoundError when the credit does not exist or is already
	// applied, so two concurrent apply attempts cannot both credit the
	// worker.
	MarkApplied(ctx context.Context, id kernel.UUID, appliedAt time.Time) error
}
