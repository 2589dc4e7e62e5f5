package ports

import (
	"context"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for worker profiles.
type WorkerRepository interface {
	// GetByUserID retrieves the worker profile belonging to a platform user
	// account. Assignments reference workers by user ID, so this is the
	// lookup the lifecycle flow uses.
	// Returns errs.ObjectNotFoundError when the user has no worker profile.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*worker.Worker, error)

	// IncrementCompletedJob adds one completed job and the booking's earnings
	// to the worker's running totals in a single atomic update.
	IncrementCompletedJob(ctx context.Context, workerID kernel.UUID, earnings float64) error
}
