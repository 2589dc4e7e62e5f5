package queries

import (
	"errors"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/guard"
)

var (
	ErrGetWorkerAssignmentQueryIsNotConstructed = errors.New(
		"GetWorkerAssignmentQuery must be created via NewGetWorkerAssignmentQuery constructor",
	)

	// ErrAssignmentNotFound and ErrUnauthorizedAssignmentAccess are distinct
	// for callers that classify with errors.Is, but share one message so a
	// response never reveals whether the assignment exists at all.
	ErrAssignmentNotFound           = errors.New("assignment not found or access denied")
	ErrUnauthorizedAssignmentAccess = errors.New("assignment not found or access denied")
)

// GetWorkerAssignmentQuery retrieves a single assignment, applying the same
// ownership check as the mutating operations.
type GetWorkerAssignmentQuery struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	workerID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWorkerAssignmentQuery creates a single-assignment lookup for the
// worker.
func NewGetWorkerAssignmentQuery(assignmentID, workerID kernel.UUID) (GetWorkerAssignmentQuery, error) {
	if err := errors.Join(
		assignmentID.Validate(),
		workerID.Validate(),
	); err != nil {
		return GetWorkerAssignmentQuery{}, err
	}

	return GetWorkerAssignmentQuery{
		assignmentID: assignmentID,
		workerID:     workerID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetWorkerAssignmentQueryIsNotConstructed if validation fails.
func (q GetWorkerAssignmentQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerAssignmentQueryIsNotConstructed)
}

// AssignmentID returns the assignment to look up.
func (q GetWorkerAssignmentQuery) AssignmentID() kernel.UUID {
	return q.assignmentID
}

// WorkerID returns the calling worker.
func (q GetWorkerAssignmentQuery) WorkerID() kernel.UUID {
	return q.workerID
}
