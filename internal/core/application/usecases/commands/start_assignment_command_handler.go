package commands

import (
	"context"
	"time"

	"fieldwork/internal/core/domain/model/assignment"
)

// StartAssignmentCommandHandler moves an accepted assignment to in_progress
// and stamps the booking's actual start time, as one atomic transaction.
// Location tracking and the started notification run after commit.
type StartAssignmentCommandHandler struct {
	uowFactory  LifecycleUoWFactory
	sideEffects *SideEffects
}

// NewStartAssignmentCommandHandler creates a handler for start operations.
func NewStartAssignmentCommandHandler(uowFactory LifecycleUoWFactory, sideEffects *SideEffects) StartAssignmentCommandHandler {
	return StartAssignmentCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle processes the start command and returns the updated assignment.
func (h StartAssignmentCommandHandler) Handle(ctx context.Context, command StartAssignmentCommand) (*assignment.Assignment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := getOwnedAssignment(ctx, uow.AssignmentRepository(), command.AssignmentID(), command.WorkerID())
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()
	now := time.Now().UTC()
	if err = aggregate.Start(now); err != nil {
		return nil, err
	}

	booking, err := uow.BookingRepository().Get(ctx, aggregate.BookingID())
	if err != nil {
		return nil, err
	}
	if err = booking.StartWork(now); err != nil {
		return nil, bookingOutOfSyncError(booking.ID(), err)
	}

	if err = uow.AssignmentRepository().UpdateInStatus(ctx, aggregate, previous); err != nil {
		return nil, guardConcurrentUpdate(err)
	}

	if err = uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.sideEffects.AfterStarted(aggregate.ID(), booking.ID(), aggregate.WorkerID())

	return aggregate, nil
}
