package commands

import (
	"errors"
	"time"

	"fieldwork/internal/pkg/guard"
)

var (
	ErrReconcileEarningsCommandIsNotConstructed = errors.New(
		"ReconcileEarningsCommand must be created via NewReconcileEarningsCommand constructor",
	)
	ErrStaleAfterIsInvalid = errors.New("staleAfter must be greater than 0")
	ErrBatchSizeIsInvalid  = errors.New("batchSize must be greater than 0")
)

// ReconcileEarningsCommand sweeps pending earnings credits whose post-commit
// apply step was lost, for example because the process died between the
// completion commit and the stats increment.
type ReconcileEarningsCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration
	batchSize  int

	guard guard.ConstructorGuard
}

// NewReconcileEarningsCommand creates a sweep command. Credits younger than
// staleAfter are left alone since their post-commit apply may still be in
// flight; at most batchSize credits are applied per sweep.
func NewReconcileEarningsCommand(staleAfter time.Duration, batchSize int) (ReconcileEarningsCommand, error) {
	command := ReconcileEarningsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setStaleAfter(staleAfter),
		command.setBatchSize(batchSize),
	); err != nil {
		return ReconcileEarningsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileEarningsCommandIsNotConstructed if validation fails.
func (c ReconcileEarningsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileEarningsCommandIsNotConstructed)
}

// StaleAfter returns the age a credit must reach before the sweep takes it.
func (c ReconcileEarningsCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

// BatchSize returns the maximum number of credits applied per sweep.
func (c ReconcileEarningsCommand) BatchSize() int {
	return c.batchSize
}

func (c *ReconcileEarningsCommand) setStaleAfter(staleAfter time.Duration) error {
	if staleAfter <= 0 {
		return ErrStaleAfterIsInvalid
	}

	c.staleAfter = staleAfter
	return nil
}

func (c *ReconcileEarningsCommand) setBatchSize(batchSize int) error {
	if batchSize <= 0 {
		return ErrBatchSizeIsInvalid
	}

	c.batchSize = batchSize
	return nil
}
