package commands

import (
	"context"
	"time"

	"fieldwork/internal/core/domain/model/assignment"
)

// AcceptAssignmentCommandHandler moves an assignment from assigned to
// accepted and confirms its booking, as one atomic transaction. Once the
// transaction commits, the chat room, call masking and notification follow-ups
// run on the task pool without blocking the caller.
type AcceptAssignmentCommandHandler struct {
	uowFactory  LifecycleUoWFactory
	sideEffects *SideEffects
}

// NewAcceptAssignmentCommandHandler creates a handler for accept operations.
func NewAcceptAssignmentCommandHandler(uowFactory LifecycleUoWFactory, sideEffects *SideEffects) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle processes the accept command and returns the updated assignment.
// The ownership check runs before the state check; a lost race against a
// concurrent transition surfaces as assignment.ErrInvalidStateTransition.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, command AcceptAssignmentCommand) (*assignment.Assignment, error) {
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
	if err = aggregate.Accept(now, command.AcceptanceNotes()); err != nil {
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

	h.sideEffects.AfterAccepted(aggregate.ID(), booking.ID())

	return aggregate, nil
}
