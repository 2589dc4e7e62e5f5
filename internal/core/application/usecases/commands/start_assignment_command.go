package commands

import (
	"errors"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/guard"
)

var ErrStartAssignmentCommandIsNotConstructed = errors.New(
	"StartAssignmentCommand must be created via NewStartAssignmentCommand constructor",
)

// StartAssignmentCommand represents a worker beginning the work on site.
// Starting records the actual start time on the booking, which later anchors
// the duration calculation on completion.
type StartAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	workerID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartAssignmentCommand creates a command to start an accepted
// assignment.
func NewStartAssignmentCommand(assignmentID, workerID kernel.UUID) (StartAssignmentCommand, error) {
	command := StartAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAssignmentID(assignmentID),
		command.setWorkerID(workerID),
	); err != nil {
		return StartAssignmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartAssignmentCommandIsNotConstructed if validation fails.
func (c StartAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrStartAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the identifier of the assignment being started.
func (c StartAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// WorkerID returns the identifier of the calling worker.
func (c StartAssignmentCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c *StartAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *StartAssignmentCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}
