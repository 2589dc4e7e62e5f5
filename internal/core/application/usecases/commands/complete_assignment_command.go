package commands

import (
	"errors"
	"slices"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/guard"
)

var ErrCompleteAssignmentCommandIsNotConstructed = errors.New(
	"CompleteAssignmentCommand must be created via NewCompleteAssignmentCommand constructor",
)

// CompleteAssignmentCommand represents a worker finishing the job. Completion
// closes the engagement, records the work report and credits the worker's
// running totals with the booking's earnings.
type CompleteAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID    kernel.UUID
	workerID        kernel.UUID
	completionNotes string
	materialsUsed   []string
	photos          []string

	guard guard.ConstructorGuard
}

// NewCompleteAssignmentCommand creates a command to complete an in-progress
// assignment. Notes, materials and photos are all optional and end up on the
// completion report.
func NewCompleteAssignmentCommand(
	assignmentID, workerID kernel.UUID,
	completionNotes string,
	materialsUsed []string,
	photos []string,
) (CompleteAssignmentCommand, error) {
	command := CompleteAssignmentCommand{
		completionNotes: completionNotes,
		materialsUsed:   slices.Clone(materialsUsed),
		photos:          slices.Clone(photos),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAssignmentID(assignmentID),
		command.setWorkerID(workerID),
	); err != nil {
		return CompleteAssignmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteAssignmentCommandIsNotConstructed if validation fails.
func (c CompleteAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the identifier of the assignment being completed.
func (c CompleteAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// WorkerID returns the identifier of the calling worker.
func (c CompleteAssignmentCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// CompletionNotes returns the worker's description of the work done.
func (c CompleteAssignmentCommand) CompletionNotes() string {
	return c.completionNotes
}

// MaterialsUsed returns the materials the worker reports having used.
func (c CompleteAssignmentCommand) MaterialsUsed() []string {
	return c.materialsUsed
}

// Photos returns references to the photos the worker attached.
func (c CompleteAssignmentCommand) Photos() []string {
	return c.photos
}

func (c *CompleteAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *CompleteAssignmentCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}
