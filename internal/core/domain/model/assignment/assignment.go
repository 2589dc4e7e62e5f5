package assignment

import (
	"errors"
	"fmt"
	"time"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/errs"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
	// not created through NewAssignment or RestoreAssignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment")
)

// Assignment is the aggregate root binding one worker to one booking for a
// single job cycle. It owns the lifecycle state machine and the timestamps
// recording each transition.
//
// Invariants:
//   - at most one of acceptedAt and rejectedAt is set
//   - startedAt is set only when acceptedAt is set
//   - completedAt is set only when startedAt is set
//   - status transitions follow the fixed transition set in Status
//
// Fields are private; all mutation goes through the transition methods so the
// invariants cannot be bypassed.
type Assignment struct {
	id         kernel.UUID
	bookingID  kernel.UUID
	workerID   kernel.UUID
	assignedBy kernel.UUID

	status Status

	assignedAt  time.Time
	acceptedAt  *time.Time
	rejectedAt  *time.Time
	startedAt   *time.Time
	completedAt *time.Time

	assignmentNotes string
	acceptanceNotes string
	rejectionNotes  string
	rejectionReason string

	isConstructed bool
}

// NewAssignment creates an Assignment in the initial Assigned status.
// Dispatch (out of this core's authority) calls this when binding a worker to
// a booking; from that point the aggregate owns the lifecycle.
func NewAssignment(
	id, bookingID, workerID, assignedBy kernel.UUID,
	assignedAt time.Time,
	assignmentNotes string,
) (*Assignment, error) {
	a := &Assignment{
		status:          Assigned,
		assignedAt:      assignedAt,
		assignmentNotes: assignmentNotes,
		isConstructed:   true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setBookingID(bookingID),
		a.setWorkerID(workerID),
		a.setAssignedBy(assignedBy),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs an Assignment from persistence, validating
// both identifiers and the timestamp invariants.
func RestoreAssignment(
	id, bookingID, workerID, assignedBy kernel.UUID,
	status Status,
	assignedAt time.Time,
	acceptedAt, rejectedAt, startedAt, completedAt *time.Time,
	assignmentNotes, acceptanceNotes, rejectionNotes, rejectionReason string,
) (*Assignment, error) {
	a := &Assignment{
		status:          status,
		assignedAt:      assignedAt,
		acceptedAt:      acceptedAt,
		rejectedAt:      rejectedAt,
		startedAt:       startedAt,
		completedAt:     completedAt,
		assignmentNotes: assignmentNotes,
		acceptanceNotes: acceptanceNotes,
		rejectionNotes:  rejectionNotes,
		rejectionReason: rejectionReason,
		isConstructed:   true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setBookingID(bookingID),
		a.setWorkerID(workerID),
		a.setAssignedBy(assignedBy),
		status.Validate(),
		a.validateTimestamps(),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Assignment) validateTimestamps() error {
	if a.acceptedAt != nil && a.rejectedAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("assignment",
			fmt.Errorf("acceptedAt and rejectedAt are mutually exclusive"))
	}
	if a.startedAt != nil && a.acceptedAt == nil {
		return errs.NewValueIsInvalidErrorWithCause("assignment",
			fmt.Errorf("startedAt requires acceptedAt"))
	}
	if a.completedAt != nil && a.startedAt == nil {
		return errs.NewValueIsInvalidErrorWithCause("assignment",
			fmt.Errorf("completedAt requires startedAt"))
	}
	return nil
}

// Validate ensures the Assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two assignments by identifier.
func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// BookingID returns the identifier of the paired booking.
func (a *Assignment) BookingID() kernel.UUID {
	return a.bookingID
}

// WorkerID returns the identifier of the worker bound to the booking.
func (a *Assignment) WorkerID() kernel.UUID {
	return a.workerID
}

// AssignedBy returns the identifier of the dispatcher who created the binding.
func (a *Assignment) AssignedBy() kernel.UUID {
	return a.assignedBy
}

// Status returns the current lifecycle status.
func (a *Assignment) Status() Status {
	return a.status
}

// AssignedAt returns the time the assignment was created.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// AcceptedAt returns the acceptance time, or nil when never accepted.
func (a *Assignment) AcceptedAt() *time.Time {
	return a.acceptedAt
}

// RejectedAt returns the rejection time, or nil when never rejected.
func (a *Assignment) RejectedAt() *time.Time {
	return a.rejectedAt
}

// StartedAt returns the work start time, or nil when not started.
func (a *Assignment) StartedAt() *time.Time {
	return a.startedAt
}

// CompletedAt returns the completion time, or nil when not completed.
func (a *Assignment) CompletedAt() *time.Time {
	return a.completedAt
}

// AssignmentNotes returns the notes supplied when the assignment was created.
func (a *Assignment) AssignmentNotes() string {
	return a.assignmentNotes
}

// AcceptanceNotes returns the notes the worker supplied on acceptance.
func (a *Assignment) AcceptanceNotes() string {
	return a.acceptanceNotes
}

// RejectionNotes returns the notes the worker supplied on rejection.
func (a *Assignment) RejectionNotes() string {
	return a.rejectionNotes
}

// RejectionReason returns the structured rejection reason.
func (a *Assignment) RejectionReason() string {
	return a.rejectionReason
}

// BelongsTo reports whether the assignment is owned by the given worker.
// Ownership is checked before any state transition.
func (a *Assignment) BelongsTo(workerID kernel.UUID) bool {
	return a.workerID.IsEqual(workerID)
}

// Accept transitions the assignment to Accepted, recording the acceptance
// time and notes. Allowed only from Assigned.
func (a *Assignment) Accept(now time.Time, notes string) error {
	newStatus, err := a.status.Accept()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.acceptedAt = &now
	a.acceptanceNotes = notes
	return nil
}

// Reject transitions the assignment to Rejected, recording the rejection
// time, reason and notes. Allowed only from Assigned. Rejected is final.
func (a *Assignment) Reject(now time.Time, reason, notes string) error {
	newStatus, err := a.status.Reject()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.rejectedAt = &now
	a.rejectionReason = reason
	a.rejectionNotes = notes
	return nil
}

// Start transitions the assignment to InProgress, recording the start time.
// Allowed only from Accepted.
func (a *Assignment) Start(now time.Time) error {
	newStatus, err := a.status.Start()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.startedAt = &now
	return nil
}

// Complete transitions the assignment to Completed, recording the completion
// time. Allowed only from InProgress. Completed is final.
func (a *Assignment) Complete(now time.Time) error {
	newStatus, err := a.status.Complete()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.completedAt = &now
	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setBookingID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.bookingID = id
	return nil
}

func (a *Assignment) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.workerID = id
	return nil
}

func (a *Assignment) setAssignedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.assignedBy = id
	return nil
}
