package commands

import (
	"errors"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/guard"
)

var (
	ErrRejectAssignmentCommandIsNotConstructed = errors.New(
		"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
	)
	ErrRejectionReasonIsRequired = errors.New("rejection reason is required")
)

// RejectAssignmentCommand represents a worker turning an assignment down.
// The booking returns to the assignment pool so another worker can be
// dispatched.
type RejectAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID    kernel.UUID
	workerID        kernel.UUID
	rejectionReason string
	rejectionNotes  string

	guard guard.ConstructorGuard
}

// NewRejectAssignmentCommand creates a command to reject an assignment.
// A rejection reason is mandatory; free-form notes are optional.
func NewRejectAssignmentCommand(assignmentID, workerID kernel.UUID, rejectionReason, rejectionNotes string) (RejectAssignmentCommand, error) {
	command := RejectAssignmentCommand{
		rejectionNotes: rejectionNotes,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAssignmentID(assignmentID),
		command.setWorkerID(workerID),
		command.setRejectionReason(rejectionReason),
	); err != nil {
		return RejectAssignmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRejectAssignmentCommandIsNotConstructed if validation fails.
func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the identifier of the assignment being rejected.
func (c RejectAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// WorkerID returns the identifier of the calling worker.
func (c RejectAssignmentCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// RejectionReason returns why the worker turned the assignment down.
func (c RejectAssignmentCommand) RejectionReason() string {
	return c.rejectionReason
}

// RejectionNotes returns the worker's optional free-form notes.
func (c RejectAssignmentCommand) RejectionNotes() string {
	return c.rejectionNotes
}

func (c *RejectAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *RejectAssignmentCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}

func (c *RejectAssignmentCommand) setRejectionReason(rejectionReason string) error {
	if rejectionReason == "" {
		return ErrRejectionReasonIsRequired
	}

	c.rejectionReason = rejectionReason
	return nil
}
