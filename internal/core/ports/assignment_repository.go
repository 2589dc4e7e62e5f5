// Package ports defines the contracts between the application core and
// infrastructure: repositories bound to a unit of work, and the outbound
// gateways the lifecycle side effects are dispatched through.
package ports

import (
	"context"

	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment
// aggregates. Listing assignments is a read-model concern and lives with the
// query handlers, not here.
type AssignmentRepository interface {
	// Add persists a new assignment aggregate to storage.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such assignment exists.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// UpdateInStatus persists changes to an existing assignment only if its
	// stored status still equals expected. When another transaction has moved
	// the assignment out of expected in the meantime, no row is touched and
	// errs.ErrVersionIsInvalid is returned.
	UpdateInStatus(ctx context.Context, aggregate *assignment.Assignment, expected assignment.Status) error

	// AddCompletionReport persists the completion report recorded when an
	// assignment is completed.
	AddCompletionReport(ctx context.Context, report *assignment.CompletionReport) error
}
