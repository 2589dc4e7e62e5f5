package ports

import (
	"context"

	"fieldwork/internal/core/domain/model/booking"
	"fieldwork/internal/core/domain/model/kernel"
)

// BookingRepository defines the persistence contract for booking aggregates.
// The assignment flow only rehydrates bookings and writes back the lifecycle
// fields it owns; it never creates or deletes bookings.
type BookingRepository interface {
	// Get retrieves a booking aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such booking exists.
	Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error)

	// Update persists the lifecycle fields of an existing booking: status,
	// actual work window and derived duration. All other columns are left
	// untouched.
	Update(ctx context.Context, aggregate *booking.Booking) error
}
