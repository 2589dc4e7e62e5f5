package commands

import (
	"context"
	"errors"
	"time"

	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/ports"
	"fieldwork/internal/pkg/errs"
)

// CompleteAssignmentCommandHandler moves an in-progress assignment to
// completed. In one transaction it stamps the booking's actual end time and
// derived duration, stores the completion report and writes the pending
// earnings credit; after commit the engagement teardown and the stats apply
// run on the task pool.
//
// Earnings resolve as the booking's quote when present, otherwise the catalog
// service price, otherwise zero.
type CompleteAssignmentCommandHandler struct {
	uowFactory  CompletionUoWFactory
	catalog     ports.ServiceCatalog
	sideEffects *SideEffects
}

// NewCompleteAssignmentCommandHandler creates a handler for complete
// operations.
func NewCompleteAssignmentCommandHandler(
	uowFactory CompletionUoWFactory,
	catalog ports.ServiceCatalog,
	sideEffects *SideEffects,
) CompleteAssignmentCommandHandler {
	return CompleteAssignmentCommandHandler{
		uowFactory:  uowFactory,
		catalog:     catalog,
		sideEffects: sideEffects,
	}
}

// Handle processes the complete command and returns the updated assignment.
func (h CompleteAssignmentCommandHandler) Handle(ctx context.Context, command CompleteAssignmentCommand) (*assignment.Assignment, error) {
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
	if err = aggregate.Complete(now); err != nil {
		return nil, err
	}

	booking, err := uow.BookingRepository().Get(ctx, aggregate.BookingID())
	if err != nil {
		return nil, err
	}
	if err = booking.CompleteWork(now); err != nil {
		return nil, bookingOutOfSyncError(booking.ID(), err)
	}

	workerProfile, err := uow.WorkerRepository().GetByUserID(ctx, aggregate.WorkerID())
	if err != nil {
		return nil, err
	}

	report, err := assignment.NewCompletionReport(
		aggregate.ID(),
		command.CompletionNotes(),
		command.MaterialsUsed(),
		command.Photos(),
	)
	if err != nil {
		return nil, err
	}

	servicePrice, err := h.servicePrice(ctx, booking.ServiceID())
	if err != nil {
		return nil, err
	}

	credit := ports.EarningsCredit{
		ID:           kernel.NewUUID(),
		AssignmentID: aggregate.ID(),
		WorkerID:     workerProfile.ID(),
		Amount:       booking.EarningsBasis(servicePrice),
		CreatedAt:    now,
	}

	if err = uow.AssignmentRepository().UpdateInStatus(ctx, aggregate, previous); err != nil {
		return nil, guardConcurrentUpdate(err)
	}

	if err = uow.AssignmentRepository().AddCompletionReport(ctx, &report); err != nil {
		return nil, err
	}

	if err = uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	if err = uow.EarningsOutboxRepository().Add(ctx, credit); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.sideEffects.AfterCompleted(aggregate.ID(), booking.ID(), aggregate.WorkerID(), credit)

	return aggregate, nil
}

// servicePrice resolves the catalog list price as the earnings fallback.
// A booking can reference a service that was since retired from the catalog;
// that only means there is no fallback price.
func (h CompleteAssignmentCommandHandler) servicePrice(ctx context.Context, serviceID kernel.UUID) (*float64, error) {
	service, err := h.catalog.Get(ctx, serviceID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return service.Price, nil
}
