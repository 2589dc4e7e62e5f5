package commands

import (
	"errors"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand represents a worker's commitment to a job they were
// assigned. Accepting confirms the underlying booking and opens the
// communication channels between the worker and the customer.
//
// Example:
//
//	cmd, err := NewAcceptAssignmentCommand(assignmentID, workerID, "arriving by 10am")
//	if err != nil {
//	    return fmt.Errorf("invalid accept request: %w", err)
//	}
//	updated, err := handler.Handle(ctx, cmd)
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID    kernel.UUID
	workerID        kernel.UUID
	acceptanceNotes string

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand creates a command to accept an assignment.
// Both identifiers must be valid; acceptance notes are optional.
func NewAcceptAssignmentCommand(assignmentID, workerID kernel.UUID, acceptanceNotes string) (AcceptAssignmentCommand, error) {
	command := AcceptAssignmentCommand{
		acceptanceNotes: acceptanceNotes,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAssignmentID(assignmentID),
		command.setWorkerID(workerID),
	); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptAssignmentCommandIsNotConstructed if validation fails.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the identifier of the assignment being accepted.
func (c AcceptAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// WorkerID returns the identifier of the calling worker.
func (c AcceptAssignmentCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// AcceptanceNotes returns the worker's optional note to the customer.
func (c AcceptAssignmentCommand) AcceptanceNotes() string {
	return c.acceptanceNotes
}

func (c *AcceptAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *AcceptAssignmentCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}
