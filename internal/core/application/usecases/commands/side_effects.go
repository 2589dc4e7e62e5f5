package commands

import (
	"context"
	"errors"
	"time"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/core/ports"
	"fieldwork/internal/pkg/errs"
	"fieldwork/internal/pkg/taskpool"
)

var (
	ErrTaskPoolIsRequired               = errors.New("task pool is required")
	ErrChatRoomManagerIsRequired        = errors.New("chat room manager is required")
	ErrCallMaskingGatewayIsRequired     = errors.New("call masking gateway is required")
	ErrLocationTrackerIsRequired        = errors.New("location tracker is required")
	ErrNotificationDispatcherIsRequired = errors.New("notification dispatcher is required")
	ErrStatsUoWFactoryIsRequired        = errors.New("stats unit of work factory is required")
)

// SideEffects fans lifecycle follow-ups out to the dependent subsystems after
// a transition has committed. Every follow-up runs on the bounded task pool:
// failures are logged by the pool with the assignment and booking identifiers
// and never reach the caller of the command.
type SideEffects struct {
	pool            *taskpool.Pool
	chat            ports.ChatRoomManager
	calls           ports.CallMaskingGateway
	location        ports.LocationTracker
	notify          ports.NotificationDispatcher
	statsUoWFactory StatsUoWFactory
}

// NewSideEffects wires the side-effect dispatcher. Every dependency is
// required; a missing one is a construction-time error, never a runtime nil
// check.
func NewSideEffects(
	pool *taskpool.Pool,
	chat ports.ChatRoomManager,
	calls ports.CallMaskingGateway,
	location ports.LocationTracker,
	notify ports.NotificationDispatcher,
	statsUoWFactory StatsUoWFactory,
) (*SideEffects, error) {
	if pool == nil {
		return nil, ErrTaskPoolIsRequired
	}
	if chat == nil {
		return nil, ErrChatRoomManagerIsRequired
	}
	if calls == nil {
		return nil, ErrCallMaskingGatewayIsRequired
	}
	if location == nil {
		return nil, ErrLocationTrackerIsRequired
	}
	if notify == nil {
		return nil, ErrNotificationDispatcherIsRequired
	}
	if statsUoWFactory == nil {
		return nil, ErrStatsUoWFactoryIsRequired
	}

	return &SideEffects{
		pool:            pool,
		chat:            chat,
		calls:           calls,
		location:        location,
		notify:          notify,
		statsUoWFactory: statsUoWFactory,
	}, nil
}

func (s *SideEffects) submit(operation string, assignmentID, bookingID kernel.UUID, run func(context.Context) error) {
	s.pool.Submit(operation, run,
		"assignment_id", assignmentID.String(),
		"booking_id", bookingID.String(),
	)
}

// AfterAccepted opens the chat room, enables call masking and notifies the
// customer and the worker.
func (s *SideEffects) AfterAccepted(assignmentID, bookingID kernel.UUID) {
	s.submit("chat_room_create", assignmentID, bookingID, func(ctx context.Context) error {
		_, err := s.chat.CreateForBooking(ctx, bookingID)
		return err
	})
	s.submit("call_masking_enable", assignmentID, bookingID, func(ctx context.Context) error {
		return s.calls.Enable(ctx, bookingID)
	})
	s.submit("notify_assignment_accepted", assignmentID, bookingID, func(ctx context.Context) error {
		return s.notify.NotifyAssignmentAccepted(ctx, assignmentID, bookingID)
	})
}

// AfterRejected disables call masking and notifies the operations team.
func (s *SideEffects) AfterRejected(assignmentID, bookingID kernel.UUID, reason string) {
	s.submit("call_masking_disable", assignmentID, bookingID, func(ctx context.Context) error {
		return s.calls.Disable(ctx, bookingID)
	})
	s.submit("notify_assignment_rejected", assignmentID, bookingID, func(ctx context.Context) error {
		return s.notify.NotifyAssignmentRejected(ctx, assignmentID, bookingID, reason)
	})
}

// AfterStarted begins location tracking and notifies the customer.
func (s *SideEffects) AfterStarted(assignmentID, bookingID, workerUserID kernel.UUID) {
	s.submit("location_tracking_start", assignmentID, bookingID, func(ctx context.Context) error {
		return s.location.StartTracking(ctx, workerUserID, assignmentID)
	})
	s.submit("notify_worker_started", assignmentID, bookingID, func(ctx context.Context) error {
		return s.notify.NotifyWorkerStarted(ctx, assignmentID, bookingID)
	})
}

// AfterCompleted tears down the engagement (call masking, chat room, location
// tracking), applies the pending earnings credit to the worker's totals and
// notifies the customer. The credit row is already committed, so when the
// apply step fails here the reconciliation job picks it up later.
func (s *SideEffects) AfterCompleted(assignmentID, bookingID, workerUserID kernel.UUID, credit ports.EarningsCredit) {
	s.submit("call_masking_disable", assignmentID, bookingID, func(ctx context.Context) error {
		return s.calls.Disable(ctx, bookingID)
	})
	s.submit("worker_stats_increment", assignmentID, bookingID, func(ctx context.Context) error {
		return applyEarningsCredit(ctx, s.statsUoWFactory.Create(), credit, time.Now().UTC())
	})
	s.submit("chat_room_close", assignmentID, bookingID, func(ctx context.Context) error {
		return s.chat.CloseForBooking(ctx, bookingID, "Service completed")
	})
	s.submit("location_tracking_stop", assignmentID, bookingID, func(ctx context.Context) error {
		return s.location.StopTracking(ctx, workerUserID, assignmentID)
	})
	s.submit("notify_worker_completed", assignmentID, bookingID, func(ctx context.Context) error {
		return s.notify.NotifyWorkerCompleted(ctx, assignmentID, bookingID)
	})
}

// applyEarningsCredit credits one pending earnings row to the worker's
// running totals and stamps it applied, in one transaction. Used both right
// after completion and by the reconciliation sweep. The conditional mark runs
// first so a credit can never be applied twice when both paths race.
func applyEarningsCredit(ctx context.Context, uow StatsUoW, credit ports.EarningsCredit, now time.Time) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	err := uow.EarningsOutboxRepository().MarkApplied(ctx, credit.ID, now)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := uow.WorkerRepository().IncrementCompletedJob(ctx, credit.WorkerID, credit.Amount); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
