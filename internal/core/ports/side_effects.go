package ports

import (
	"context"

	"fieldwork/internal/core/domain/model/kernel"
)

// ChatRoomManager manages the customer-worker chat room tied to a booking.
// Rooms open when a worker accepts and close when the engagement ends.
type ChatRoomManager interface {
	// CreateForBooking opens the chat room for the booking and returns its
	// identifier. Creating a room for a booking that already has an open one
	// returns the existing room.
	CreateForBooking(ctx context.Context, bookingID kernel.UUID) (kernel.UUID, error)

	// CloseForBooking closes the booking's open chat room, recording why.
	// Closing when no room is open is a no-op.
	CloseForBooking(ctx context.Context, bookingID kernel.UUID, reason string) error
}

// CallMaskingGateway controls the masked phone bridge between the customer
// and the worker on a booking. Both operations are idempotent; participant
// numbers are resolved by the implementation.
type CallMaskingGateway interface {
	// Enable provisions a masked call session for the booking.
	Enable(ctx context.Context, bookingID kernel.UUID) error

	// Disable tears down the booking's masked call session.
	Disable(ctx context.Context, bookingID kernel.UUID) error
}

// LocationTracker controls live location sharing for a worker on an active
// assignment.
type LocationTracker interface {
	// StartTracking begins publishing the worker's live location for the
	// assignment.
	StartTracking(ctx context.Context, workerUserID kernel.UUID, assignmentID kernel.UUID) error

	// StopTracking stops publishing and clears the published location.
	StopTracking(ctx context.Context, workerUserID kernel.UUID, assignmentID kernel.UUID) error
}

// NotificationDispatcher fans lifecycle events out to the people who care
// about them. Implementations resolve recipient contacts themselves.
type NotificationDispatcher interface {
	// NotifyWorkerAssigned tells a worker they have a new assignment.
	// Dispatch happens outside this service; the operation exists so the
	// dispatching collaborator shares one notification surface.
	NotifyWorkerAssigned(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID) error

	// NotifyAssignmentAccepted tells the customer their booking's worker
	// accepted the job.
	NotifyAssignmentAccepted(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID) error

	// NotifyAssignmentRejected tells the operations team an assignment was
	// turned down and the booking needs a new worker.
	NotifyAssignmentRejected(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID, reason string) error

	// NotifyWorkerStarted tells the customer the worker has started.
	NotifyWorkerStarted(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID) error

	// NotifyWorkerCompleted tells the customer the work is done.
	NotifyWorkerCompleted(ctx context.Context, assignmentID kernel.UUID, bookingID kernel.UUID) error
}
