package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fieldwork/internal/core/application/usecases/commands"
	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/booking"
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/domain/model/worker"
	"fieldwork/internal/core/ports"
	"fieldwork/internal/pkg/taskpool"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) UpdateInStatus(ctx context.Context, a *assignment.Assignment, expected assignment.Status) error {
	args := m.Called(ctx, a, expected)
	return args.Error(0)
}

func (m *MockAssignmentRepository) AddCompletionReport(ctx context.Context, report *assignment.CompletionReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) IncrementCompletedJob(ctx context.Context, workerID kernel.UUID, earnings float64) error {
	args := m.Called(ctx, workerID, earnings)
	return args.Error(0)
}

type MockEarningsOutboxRepository struct{ mock.Mock }

func (m *MockEarningsOutboxRepository) Add(ctx context.Context, credit ports.EarningsCredit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockEarningsOutboxRepository) GetUnapplied(ctx context.Context, olderThan time.Time, limit int) ([]ports.EarningsCredit, error) {
	args := m.Called(ctx, olderThan, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.EarningsCredit), args.Error(1)
}

func (m *MockEarningsOutboxRepository) MarkApplied(ctx context.Context, id kernel.UUID, appliedAt time.Time) error {
	args := m.Called(ctx, id, appliedAt)
	return args.Error(0)
}

type MockServiceCatalog struct{ mock.Mock }

func (m *MockServiceCatalog) Get(ctx context.Context, id kernel.UUID) (ports.CatalogService, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.CatalogService), args.Error(1)
}

type MockLifecycleUoW struct{ mock.Mock }

func (m *MockLifecycleUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockLifecycleUoW) BookingRepository() ports.BookingRepository {
	args := m.Called()
	return args.Get(0).(ports.BookingRepository)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	args := m.Called()
	return args.Get(0).(commands.LifecycleUoW)
}

type MockCompletionUoW struct{ MockLifecycleUoW }

func (m *MockCompletionUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockCompletionUoW) EarningsOutboxRepository() ports.EarningsOutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.EarningsOutboxRepository)
}

type MockCompletionUoWFactory struct{ mock.Mock }

func (m *MockCompletionUoWFactory) Create() commands.CompletionUoW {
	args := m.Called()
	return args.Get(0).(commands.CompletionUoW)
}

type MockStatsUoW struct{ mock.Mock }

func (m *MockStatsUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatsUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatsUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatsUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockStatsUoW) EarningsOutboxRepository() ports.EarningsOutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.EarningsOutboxRepository)
}

type MockStatsUoWFactory struct{ mock.Mock }

func (m *MockStatsUoWFactory) Create() commands.StatsUoW {
	args := m.Called()
	return args.Get(0).(commands.StatsUoW)
}

type MockChatRoomManager struct{ mock.Mock }

func (m *MockChatRoomManager) CreateForBooking(ctx context.Context, bookingID kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockChatRoomManager) CloseForBooking(ctx context.Context, bookingID kernel.UUID, reason string) error {
	args := m.Called(ctx, bookingID, reason)
	return args.Error(0)
}

type MockCallMaskingGateway struct{ mock.Mock }

func (m *MockCallMaskingGateway) Enable(ctx context.Context, bookingID kernel.UUID) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockCallMaskingGateway) Disable(ctx context.Context, bookingID kernel.UUID) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type MockLocationTracker struct{ mock.Mock }

func (m *MockLocationTracker) StartTracking(ctx context.Context, workerUserID, assignmentID kernel.UUID) error {
	args := m.Called(ctx, workerUserID, assignmentID)
	return args.Error(0)
}

func (m *MockLocationTracker) StopTracking(ctx context.Context, workerUserID, assignmentID kernel.UUID) error {
	args := m.Called(ctx, workerUserID, assignmentID)
	return args.Error(0)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) NotifyWorkerAssigned(ctx context.Context, assignmentID, bookingID kernel.UUID) error {
	args := m.Called(ctx, assignmentID, bookingID)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyAssignmentAccepted(ctx context.Context, assignmentID, bookingID kernel.UUID) error {
	args := m.Called(ctx, assignmentID, bookingID)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyAssignmentRejected(ctx context.Context, assignmentID, bookingID kernel.UUID, reason string) error {
	args := m.Called(ctx, assignmentID, bookingID, reason)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyWorkerStarted(ctx context.Context, assignmentID, bookingID kernel.UUID) error {
	args := m.Called(ctx, assignmentID, bookingID)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyWorkerCompleted(ctx context.Context, assignmentID, bookingID kernel.UUID) error {
	args := m.Called(ctx, assignmentID, bookingID)
	return args.Error(0)
}

// sideEffectMocks bundles the mocked side-effect ports behind a real task
// pool with a single worker, so tasks run in submission order and
// pool.Shutdown drains them deterministically before assertions.
type sideEffectMocks struct {
	pool         *taskpool.Pool
	chat         *MockChatRoomManager
	calls        *MockCallMaskingGateway
	location     *MockLocationTracker
	notify       *MockNotificationDispatcher
	statsFactory *MockStatsUoWFactory
}

func newSideEffectMocks(t *testing.T) (*commands.SideEffects, *sideEffectMocks) {
	t.Helper()

	m := &sideEffectMocks{
		pool:         taskpool.New(1, 16, slog.New(slog.NewTextHandler(io.Discard, nil))),
		chat:         new(MockChatRoomManager),
		calls:        new(MockCallMaskingGateway),
		location:     new(MockLocationTracker),
		notify:       new(MockNotificationDispatcher),
		statsFactory: new(MockStatsUoWFactory),
	}

	sideEffects, err := commands.NewSideEffects(m.pool, m.chat, m.calls, m.location, m.notify, m.statsFactory)
	require.NoError(t, err)

	return sideEffects, m
}

// drain waits for all submitted side effects to finish.
func (m *sideEffectMocks) drain() {
	m.pool.Shutdown()
}

// newAssignmentInStatus builds an assignment for the worker and walks it to
// the requested status.
func newAssignmentInStatus(t *testing.T, workerID kernel.UUID, status assignment.Status) *assignment.Assignment {
	t.Helper()

	a, err := assignment.NewAssignment(
		kernel.NewUUID(), kernel.NewUUID(), workerID, kernel.NewUUID(),
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), "",
	)
	require.NoError(t, err)

	switch status {
	case assignment.Assigned:
	case assignment.Accepted:
		require.NoError(t, a.Accept(time.Now().UTC(), ""))
	case assignment.Rejected:
		require.NoError(t, a.Reject(time.Now().UTC(), "unavailable", ""))
	case assignment.InProgress:
		require.NoError(t, a.Accept(time.Now().UTC(), ""))
		require.NoError(t, a.Start(time.Now().UTC()))
	case assignment.Completed:
		require.NoError(t, a.Accept(time.Now().UTC(), ""))
		require.NoError(t, a.Start(time.Now().UTC()))
		require.NoError(t, a.Complete(time.Now().UTC()))
	default:
		t.Fatalf("unsupported status %s", status)
	}

	return a
}

// newBookingInStatus restores a booking in the requested status with the
// given quote.
func newBookingInStatus(t *testing.T, id kernel.UUID, status booking.Status, quote *float64) *booking.Booking {
	t.Helper()

	scheduledStart := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	var actualStart *time.Time
	if status == booking.InProgress || status == booking.Completed {
		actualStart = &scheduledStart
	}

	b, err := booking.RestoreBooking(
		id, kernel.NewUUID(), kernel.NewUUID(),
		status,
		scheduledStart, scheduledStart.Add(2*time.Hour),
		actualStart, nil, nil,
		quote, "pending",
		"Asha Verma", "+91-98765-43210",
		"12 Rose Garden Lane", "leaking kitchen tap",
	)
	require.NoError(t, err)
	return b
}
