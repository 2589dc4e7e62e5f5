package booking

import (
	"errors"
	"fmt"
	"time"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/errs"
)

var (
	// ErrBookingIsNotConstructed is returned when a Booking instance was not
	// created through RestoreBooking.
	ErrBookingIsNotConstructed = errors.New("Booking must be created via RestoreBooking constructor")
)

// Booking is the customer's service request. The assignment flow never creates
// bookings; it rehydrates existing ones and mutates the narrow slice of state
// it is authorized to touch: the lifecycle status and the actual work window.
//
// Booking follows these invariants:
//   - Must have valid booking, customer and service identifiers
//   - Status transitions follow the orchestrator-visible state machine
//   - actualDurationMinutes is only derived, never set directly
type Booking struct {
	// id is the unique identifier for the booking
	id kernel.UUID

	// userID identifies the customer who owns the booking
	userID kernel.UUID

	// serviceID identifies the catalog service being performed
	serviceID kernel.UUID

	// status represents the current state in the booking lifecycle
	status Status

	// scheduledStartTime and scheduledEndTime are the agreed visit window
	scheduledStartTime time.Time
	scheduledEndTime   time.Time

	// actualStartTime is set when the worker starts the work
	actualStartTime *time.Time

	// actualEndTime is set when the worker completes the work
	actualEndTime *time.Time

	// actualDurationMinutes is derived from the actual window, whole minutes
	actualDurationMinutes *int

	// quoteAmount is the negotiated price, overriding the catalog price
	quoteAmount *float64

	// paymentStatus is owned by the payment subsystem, read-only here
	paymentStatus string

	// contactPerson and contactPhone are the on-site contact for the visit
	contactPerson string
	contactPhone  string

	// address is the service location, a plain display string
	address string

	// description is the customer's free-form problem description
	description string

	// isConstructed ensures the booking was created via RestoreBooking
	isConstructed bool
}

// RestoreBooking rehydrates a Booking from persistence. It is the only
// constructor: bookings are created outside the assignment flow, so there is
// no NewBooking here.
func RestoreBooking(
	id kernel.UUID,
	userID kernel.UUID,
	serviceID kernel.UUID,
	status Status,
	scheduledStartTime time.Time,
	scheduledEndTime time.Time,
	actualStartTime *time.Time,
	actualEndTime *time.Time,
	actualDurationMinutes *int,
	quoteAmount *float64,
	paymentStatus string,
	contactPerson string,
	contactPhone string,
	address string,
	description string,
) (*Booking, error) {
	booking := &Booking{
		scheduledStartTime:    scheduledStartTime,
		scheduledEndTime:      scheduledEndTime,
		actualStartTime:       actualStartTime,
		actualEndTime:         actualEndTime,
		actualDurationMinutes: actualDurationMinutes,
		quoteAmount:           quoteAmount,
		paymentStatus:         paymentStatus,
		contactPerson:         contactPerson,
		contactPhone:          contactPhone,
		address:               address,
		description:           description,
		isConstructed:         true,
	}

	if err := errors.Join(
		booking.setID(id),
		booking.setUserID(userID),
		booking.setServiceID(serviceID),
		booking.setStatus(status),
	); err != nil {
		return nil, err
	}

	if actualEndTime != nil && actualStartTime == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("actualEndTime",
			errors.New("booking has an actual end time without an actual start time"))
	}

	return booking, nil
}

// Validate ensures the Booking instance was properly constructed through
// RestoreBooking.
func (b *Booking) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookingIsNotConstructed
	}
	return nil
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() kernel.UUID {
	return b.id
}

// UserID returns the identifier of the customer who owns the booking.
func (b *Booking) UserID() kernel.UUID {
	return b.userID
}

// ServiceID returns the identifier of the catalog service being performed.
func (b *Booking) ServiceID() kernel.UUID {
	return b.serviceID
}

// Status returns the current status of the booking.
func (b *Booking) Status() Status {
	return b.status
}

// ScheduledStartTime returns the start of the agreed visit window.
func (b *Booking) ScheduledStartTime() time.Time {
	return b.scheduledStartTime
}

// ScheduledEndTime returns the end of the agreed visit window.
func (b *Booking) ScheduledEndTime() time.Time {
	return b.scheduledEndTime
}

// ActualStartTime returns when the worker started the work, nil before start.
func (b *Booking) ActualStartTime() *time.Time {
	return b.actualStartTime
}

// ActualEndTime returns when the worker completed the work, nil before
// completion.
func (b *Booking) ActualEndTime() *time.Time {
	return b.actualEndTime
}

// ActualDurationMinutes returns the derived work duration in whole minutes,
// nil before completion.
func (b *Booking) ActualDurationMinutes() *int {
	return b.actualDurationMinutes
}

// QuoteAmount returns the negotiated price, nil when no quote was agreed.
func (b *Booking) QuoteAmount() *float64 {
	return b.quoteAmount
}

// PaymentStatus returns the payment subsystem's status string.
func (b *Booking) PaymentStatus() string {
	return b.paymentStatus
}

// ContactPerson returns the on-site contact name for the visit.
func (b *Booking) ContactPerson() string {
	return b.contactPerson
}

// ContactPhone returns the on-site contact phone for the visit.
func (b *Booking) ContactPhone() string {
	return b.contactPhone
}

// Address returns the service location.
func (b *Booking) Address() string {
	return b.address
}

// Description returns the customer's problem description.
func (b *Booking) Description() string {
	return b.description
}

// EarningsBasis resolves the amount the worker earns for this booking:
// the negotiated quote when present, otherwise the catalog service price,
// otherwise zero.
func (b *Booking) EarningsBasis(servicePrice *float64) float64 {
	if b.quoteAmount != nil {
		return *b.quoteAmount
	}
	if servicePrice != nil {
		return *servicePrice
	}
	return 0
}

// Confirm marks the booking as confirmed when the assigned worker accepts it.
func (b *Booking) Confirm() error {
	newStatus, err := b.status.Confirm()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// StartWork marks the booking as in progress and records the actual start
// time.
func (b *Booking) StartWork(now time.Time) error {
	newStatus, err := b.status.StartWork()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.actualStartTime = &now
	return nil
}

// CompleteWork marks the booking as completed, records the actual end time
// and derives the actual duration. The duration is the actual window rounded
// down to whole minutes; it stays unset when the start time was never
// recorded.
func (b *Booking) CompleteWork(now time.Time) error {
	newStatus, err := b.status.CompleteWork()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.actualEndTime = &now
	if b.actualStartTime != nil {
		minutes := int(now.Sub(*b.actualStartTime).Minutes())
		b.actualDurationMinutes = &minutes
	}
	return nil
}

// setID validates and sets the booking's unique identifier.
func (b *Booking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	b.id = id
	return nil
}

// setUserID validates and sets the customer identifier.
func (b *Booking) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return fmt.Errorf("userId: %w", err)
	}
	b.userID = userID
	return nil
}

// setServiceID validates and sets the service identifier.
func (b *Booking) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return fmt.Errorf("serviceId: %w", err)
	}
	b.serviceID = serviceID
	return nil
}

// setStatus validates and sets the lifecycle status.
func (b *Booking) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}
