package commands

import (
	"context"
	"time"

	"fieldwork/internal/core/domain/model/assignment"
)

// RejectAssignmentCommandHandler moves an assignment from assigned to
// rejected. The booking is confirmed back into the assignment pool so the
// dispatch collaborator can pick a new worker. Call masking teardown and the
// rejection notification run after commit.
type RejectAssignmentCommandHandler struct {
	uowFactory  LifecycleUoWFactory
	sideEffects *SideEffects
}

// NewRejectAssignmentCommandHandler creates a handler for reject operations.
func NewRejectAssignmentCommandHandler(uowFactory LifecycleUoWFactory, sideEffects *SideEffects) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle processes the reject command and returns the updated assignment.
func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, command RejectAssignmentCommand) (*assignment.Assignment, error) {
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
	if err = aggregate.Reject(now, command.RejectionReason(), command.RejectionNotes()); err != nil {
		return nil, err
	}

	booking, err := uow.BookingRepository().Get(ctx, aggregate.BookingID())
	if err != nil {
		return nil, err
	}
	if err = booking.Confirm(); err != nil {
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

	h.sideEffects.AfterRejected(aggregate.ID(), booking.ID(), command.RejectionReason())

	return aggregate, nil
}
