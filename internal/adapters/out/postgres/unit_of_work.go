// Package postgres provides the GORM-based unit of work binding the
// assignment, booking, worker and earnings-outbox repositories to one
// database transaction. A lifecycle transition touches an assignment and its
// booking (and on completion the outbox); the unit of work guarantees those
// writes either all land or none do.
package postgres

import (
	"context"

	"fieldwork/internal/adapters/out/postgres/assignmentrepo"
	"fieldwork/internal/adapters/out/postgres/bookingrepo"
	"fieldwork/internal/adapters/out/postgres/outboxrepo"
	"fieldwork/internal/adapters/out/postgres/workerrepo"
	"fieldwork/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances on a shared GORM
// connection pool. Each business operation gets a fresh instance with its
// own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the lifecycle
// repositories. Repositories obtained before Begin run on the plain
// connection; after Begin they share the transaction until Commit or
// Rollback closes it.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a new database transaction. Calling Begin again on an
// instance with an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is open, which is
// the normal outcome of the deferred rollback after a successful commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// AssignmentRepository returns an assignment repository bound to the current
// transaction.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn())
}

// BookingRepository returns a booking repository bound to the current
// transaction.
func (uow *GormUnitOfWork) BookingRepository() ports.BookingRepository {
	return bookingrepo.NewGormBookingRepository(uow.conn())
}

// WorkerRepository returns a worker repository bound to the current
// transaction.
func (uow *GormUnitOfWork) WorkerRepository() ports.WorkerRepository {
	return workerrepo.NewGormWorkerRepository(uow.conn())
}

// EarningsOutboxRepository returns an earnings outbox repository bound to
// the current transaction.
func (uow *GormUnitOfWork) EarningsOutboxRepository() ports.EarningsOutboxRepository {
	return outboxrepo.NewGormEarningsOutboxRepository(uow.conn())
}
