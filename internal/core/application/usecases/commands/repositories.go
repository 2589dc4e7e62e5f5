// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// atomic persistence of the assignment with its booking, then post-commit side
// effects.
package commands

import (
	"context"

	"fieldwork/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// AssignmentRepoFactory provides access to the assignment repository
	// within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// BookingRepoFactory provides access to the booking repository within a
	// transaction.
	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	// WorkerRepoFactory provides access to the worker repository within a
	// transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// EarningsOutboxRepoFactory provides access to the earnings outbox within
	// a transaction.
	EarningsOutboxRepoFactory interface {
		EarningsOutboxRepository() ports.EarningsOutboxRepository
	}

	// LifecycleUoW manages transactions for the Accept, Reject and Start
	// operations, which touch the assignment and its booking.
	LifecycleUoW interface {
		TxManager
		AssignmentRepoFactory
		BookingRepoFactory
	}

	// LifecycleUoWFactory creates new lifecycle unit of work instances.
	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// CompletionUoW manages transactions for the Complete operation, which
	// additionally resolves the worker profile and writes the pending
	// earnings credit.
	CompletionUoW interface {
		TxManager
		AssignmentRepoFactory
		BookingRepoFactory
		WorkerRepoFactory
		EarningsOutboxRepoFactory
	}

	// CompletionUoWFactory creates new completion unit of work instances.
	CompletionUoWFactory interface {
		Create() CompletionUoW
	}

	// StatsUoW manages transactions that apply pending earnings credits to
	// worker running totals.
	StatsUoW interface {
		TxManager
		WorkerRepoFactory
		EarningsOutboxRepoFactory
	}

	// StatsUoWFactory creates new stats unit of work instances.
	StatsUoWFactory interface {
		Create() StatsUoW
	}
)
