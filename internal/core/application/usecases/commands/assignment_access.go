package commands

import (
	"context"
	"errors"
	"fmt"

	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/ports"
	"fieldwork/internal/pkg/errs"
)

// ErrAssignmentNotFound and ErrUnauthorizedAssignmentAccess are distinct
// sentinels so transport layers can map them to different status codes, but
// they deliberately carry the same message: an unauthorized caller must not
// learn whether the assignment exists.
var (
	ErrAssignmentNotFound           = errors.New("assignment not found or access denied")
	ErrUnauthorizedAssignmentAccess = errors.New("assignment not found or access denied")
)

// getOwnedAssignment loads an assignment and enforces that it belongs to the
// calling worker. The ownership check runs before any state inspection, in
// every state.
func getOwnedAssignment(
	ctx context.Context,
	repo ports.AssignmentRepository,
	assignmentID kernel.UUID,
	workerID kernel.UUID,
) (*assignment.Assignment, error) {
	aggregate, err := repo.Get(ctx, assignmentID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}

	if !aggregate.BelongsTo(workerID) {
		return nil, ErrUnauthorizedAssignmentAccess
	}

	return aggregate, nil
}

// guardConcurrentUpdate translates the conditional-update conflict into the
// lifecycle error the caller expects: losing the race is indistinguishable
// from attempting the transition after it already happened.
func guardConcurrentUpdate(err error) error {
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return fmt.Errorf("assignment was modified concurrently: %w", assignment.ErrInvalidStateTransition)
	}
	return err
}

// bookingOutOfSyncError reports a booking that cannot follow the assignment
// transition. The pair is persisted atomically, so this aborts the whole
// operation.
func bookingOutOfSyncError(bookingID kernel.UUID, cause error) error {
	return fmt.Errorf("booking %s cannot follow the transition: %w: %w",
		bookingID, assignment.ErrInvalidStateTransition, cause)
}
