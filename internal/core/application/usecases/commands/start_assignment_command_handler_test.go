package commands_test

import (
	"testing"

	"fieldwork/internal/core/application/usecases/commands"
	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/booking"
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartAssignmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	testAssignment := newAssignmentInStatus(t, workerID, assignment.Accepted)
	testBooking := newBookingInStatus(t, testAssignment.BookingID(), booking.Confirmed, nil)
	cmd, err := commands.NewStartAssignmentCommand(testAssignment.ID(), workerID)
	require.NoError(t, err)

	assignmentRepo := new(MockAssignmentRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockLifecycleUoW)
	factory := new(MockLifecycleUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Get", ctx, testAssignment.ID()).Return(testAssignment, nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Get", ctx, testAssignment.BookingID()).Return(testBooking, nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("UpdateInStatus", ctx, testAssignment, assignment.Accepted).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Update", ctx, testBooking).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	sideEffects, effects := newSideEffectMocks(t)
	effects.location.On("StartTracking", mock.Anything, workerID, testAssignment.ID()).Return(nil).Once()
	effects.notify.On("NotifyWorkerStarted", mock.Anything, testAssignment.ID(), testBooking.ID()).Return(nil).Once()

	// Act
	handler := commands.NewStartAssignmentCommandHandler(factory, sideEffects)
	updated, err := handler.Handle(ctx, cmd)
	effects.drain()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, assignment.InProgress, updated.Status())
	require.NotNil(t, updated.StartedAt())
	assert.Equal(t, booking.InProgress, testBooking.Status())
	require.NotNil(t, testBooking.ActualStartTime())
	assert.Equal(t, *updated.StartedAt(), *testBooking.ActualStartTime())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	bookingRepo.AssertExpectations(t)
	effects.location.AssertExpectations(t)
	effects.notify.AssertExpectations(t)
}

func TestStartAssignmentCommandHandler_Handle_NotAccepted_ShouldFail(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	testAssignment := newAssignmentInStatus(t, workerID, assignment.Assigned)
	cmd, err := commands.NewStartAssignmentCommand(testAssignment.ID(), workerID)
	require.NoError(t, err)

	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockLifecycleUoW)
	factory := new(MockLifecycleUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Get", ctx, testAssignment.ID()).Return(testAssignment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	sideEffects, effects := newSideEffectMocks(t)

	handler := commands.NewStartAssignmentCommandHandler(factory, sideEffects)
	_, err = handler.Handle(ctx, cmd)
	effects.drain()

	require.ErrorIs(t, err, assignment.ErrInvalidStateTransition)
	assert.Nil(t, testAssignment.StartedAt())
	assignmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartAssignmentCommandHandler_Handle_ConcurrentConflict(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	testAssignment := newAssignmentInStatus(t, workerID, assignment.Accepted)
	testBooking := newBookingInStatus(t, testAssignment.BookingID(), booking.Confirmed, nil)
	cmd, err := commands.NewStartAssignmentCommand(testAssignment.ID(), workerID)
	require.NoError(t, err)

	assignmentRepo := new(MockAssignmentRepository)
	bookingRepo := new(MockBookingRepository)
	uow := new(MockLifecycleUoW)
	factory := new(MockLifecycleUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Get", ctx, testAssignment.ID()).Return(testAssignment, nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Get", ctx, testAssignment.BookingID()).Return(testBooking, nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("UpdateInStatus", ctx, testAssignment, assignment.Accepted).
			Return(errs.NewVersionIsInvalidErrorWithCause("status")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	sideEffects, effects := newSideEffectMocks(t)

	handler := commands.NewStartAssignmentCommandHandler(factory, sideEffects)
	_, err = handler.Handle(ctx, cmd)
	effects.drain()

	require.ErrorIs(t, err, assignment.ErrInvalidStateTransition)
	effects.location.AssertNotCalled(t, "StartTracking", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
