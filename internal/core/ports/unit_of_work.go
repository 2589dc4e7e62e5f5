package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. All repositories it
// hands out are bound to the same database transaction, so an assignment and
// its booking either both change or neither does.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// AssignmentRepository returns an AssignmentRepository bound to the
	// current transaction.
	AssignmentRepository() AssignmentRepository

	// BookingRepository returns a BookingRepository bound to the current
	// transaction.
	BookingRepository() BookingRepository

	// WorkerRepository returns a WorkerRepository bound to the current
	// transaction.
	WorkerRepository() WorkerRepository

	// EarningsOutboxRepository returns an EarningsOutboxRepository bound to
	// the current transaction.
	EarningsOutboxRepository() EarningsOutboxRepository
}
