package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fieldwork/internal/core/application/usecases/commands"
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/ports"
	"fieldwork/internal/pkg/errs"
	"fieldwork/internal/pkg/taskpool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSideEffects_MissingDependency(t *testing.T) {
	pool := taskpool.New(1, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(pool.Shutdown)

	chat := new(MockChatRoomManager)
	calls := new(MockCallMaskingGateway)
	location := new(MockLocationTracker)
	notify := new(MockNotificationDispatcher)
	statsFactory := new(MockStatsUoWFactory)

	tests := []struct {
		name    string
		build   func() (*commands.SideEffects, error)
		wantErr error
	}{
		{
			"nil pool",
			func() (*commands.SideEffects, error) {
				return commands.NewSideEffects(nil, chat, calls, location, notify, statsFactory)
			},
			commands.ErrTaskPoolIsRequired,
		},
		{
			"nil chat room manager",
			func() (*commands.SideEffects, error) {
				return commands.NewSideEffects(pool, nil, calls, location, notify, statsFactory)
			},
			commands.ErrChatRoomManagerIsRequired,
		},
		{
			"nil call masking gateway",
			func() (*commands.SideEffects, error) {
				return commands.NewSideEffects(pool, chat, nil, location, notify, statsFactory)
			},
			commands.ErrCallMaskingGatewayIsRequired,
		},
		{
			"nil location tracker",
			func() (*commands.SideEffects, error) {
				return commands.NewSideEffects(pool, chat, calls, nil, notify, statsFactory)
			},
			commands.ErrLocationTrackerIsRequired,
		},
		{
			"nil notification dispatcher",
			func() (*commands.SideEffects, error) {
				return commands.NewSideEffects(pool, chat, calls, location, nil, statsFactory)
			},
			commands.ErrNotificationDispatcherIsRequired,
		},
		{
			"nil stats factory",
			func() (*commands.SideEffects, error) {
				return commands.NewSideEffects(pool, chat, calls, location, notify, nil)
			},
			commands.ErrStatsUoWFactoryIsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sideEffects, err := tt.build()

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, sideEffects)
		})
	}
}

func TestSideEffects_AfterAccepted_FailureDoesNotStopOtherEffects(t *testing.T) {
	// Arrange
	sideEffects, effects := newSideEffectMocks(t)
	assignmentID := kernel.NewUUID()
	bookingID := kernel.NewUUID()

	effects.chat.On("CreateForBooking", mock.Anything, bookingID).
		Return(kernel.UUID{}, errors.New("chat service is down")).Once()
	effects.calls.On("Enable", mock.Anything, bookingID).Return(nil).Once()
	effects.notify.On("NotifyAssignmentAccepted", mock.Anything, assignmentID, bookingID).Return(nil).Once()

	// Act
	sideEffects.AfterAccepted(assignmentID, bookingID)
	effects.drain()

	// Assert
	effects.chat.AssertExpectations(t)
	effects.calls.AssertExpectations(t)
	effects.notify.AssertExpectations(t)
}

func TestSideEffects_RepeatedCallMaskingDisable_IsIdempotent(t *testing.T) {
	// Rejection and completion both disable masking for the booking; the
	// gateway absorbs the duplicate.
	sideEffects, effects := newSideEffectMocks(t)
	assignmentID := kernel.NewUUID()
	bookingID := kernel.NewUUID()
	workerUserID := kernel.NewUUID()
	credit := ports.EarningsCredit{
		ID:           kernel.NewUUID(),
		AssignmentID: assignmentID,
		WorkerID:     kernel.NewUUID(),
		Amount:       90,
		CreatedAt:    time.Now().UTC(),
	}

	effects.calls.On("Disable", mock.Anything, bookingID).Return(nil).Twice()
	effects.notify.On("NotifyAssignmentRejected", mock.Anything, assignmentID, bookingID, "unavailable").Return(nil).Once()
	effects.notify.On("NotifyWorkerCompleted", mock.Anything, assignmentID, bookingID).Return(nil).Once()
	effects.chat.On("CloseForBooking", mock.Anything, bookingID, "Service completed").Return(nil).Once()
	effects.location.On("StopTracking", mock.Anything, workerUserID, assignmentID).Return(nil).Once()

	statsUoW := new(MockStatsUoW)
	statsOutbox := new(MockEarningsOutboxRepository)
	statsWorkers := new(MockWorkerRepository)
	effects.statsFactory.On("Create").Return(statsUoW).Once()
	statsUoW.On("Begin", mock.Anything).Return(nil).Once()
	statsUoW.On("EarningsOutboxRepository").Return(statsOutbox).Once()
	statsOutbox.On("MarkApplied", mock.Anything, credit.ID, mock.Anything).Return(nil).Once()
	statsUoW.On("WorkerRepository").Return(statsWorkers).Once()
	statsWorkers.On("IncrementCompletedJob", mock.Anything, credit.WorkerID, credit.Amount).Return(nil).Once()
	statsUoW.On("Commit", mock.Anything).Return(nil).Once()
	statsUoW.On("Rollback", mock.Anything).Return(nil).Once()

	sideEffects.AfterRejected(assignmentID, bookingID, "unavailable")
	sideEffects.AfterCompleted(assignmentID, bookingID, workerUserID, credit)
	effects.drain()

	effects.calls.AssertExpectations(t)
	effects.chat.AssertExpectations(t)
	effects.location.AssertExpectations(t)
	effects.notify.AssertExpectations(t)
	statsUoW.AssertExpectations(t)
}

func TestSideEffects_AfterCompleted_AlreadyAppliedCredit_DoesNotIncrement(t *testing.T) {
	// Arrange
	sideEffects, effects := newSideEffectMocks(t)
	assignmentID := kernel.NewUUID()
	bookingID := kernel.NewUUID()
	workerUserID := kernel.NewUUID()
	credit := ports.EarningsCredit{
		ID:           kernel.NewUUID(),
		AssignmentID: assignmentID,
		WorkerID:     kernel.NewUUID(),
		Amount:       150,
		CreatedAt:    time.Now().UTC(),
	}

	statsUoW := new(MockStatsUoW)
	statsOutbox := new(MockEarningsOutboxRepository)
	effects.statsFactory.On("Create").Return(statsUoW).Once()
	statsUoW.On("Begin", mock.Anything).Return(nil).Once()
	statsUoW.On("EarningsOutboxRepository").Return(statsOutbox).Once()
	statsOutbox.On("MarkApplied", mock.Anything, credit.ID, mock.Anything).
		Return(errs.NewObjectNotFoundError("creditId", credit.ID)).Once()
	statsUoW.On("Rollback", mock.Anything).Return(nil).Once()

	effects.calls.On("Disable", mock.Anything, bookingID).Return(nil).Once()
	effects.chat.On("CloseForBooking", mock.Anything, bookingID, "Service completed").Return(nil).Once()
	effects.location.On("StopTracking", mock.Anything, workerUserID, assignmentID).Return(nil).Once()
	effects.notify.On("NotifyWorkerCompleted", mock.Anything, assignmentID, bookingID).Return(nil).Once()

	// Act
	sideEffects.AfterCompleted(assignmentID, bookingID, workerUserID, credit)
	effects.drain()

	// Assert
	statsUoW.AssertExpectations(t)
	statsUoW.AssertNotCalled(t, "WorkerRepository")
	statsUoW.AssertNotCalled(t, "Commit", mock.Anything)
}
