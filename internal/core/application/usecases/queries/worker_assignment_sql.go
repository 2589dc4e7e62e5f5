package queries

import (
	"database/sql"
	"time"

	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// workerAssignmentSelect loads one assignment row with all the relations the
// read model needs. The worker join goes through user_id because assignments
// carry the worker's user identifier, not the profile identifier.
const workerAssignmentSelect = `
	SELECT
		a.id,
		a.booking_id,
		a.worker_id,
		a.assigned_by,
		a.status,
		a.assigned_at,
		a.accepted_at,
		a.rejected_at,
		a.started_at,
		a.completed_at,
		a.assignment_notes,
		a.acceptance_notes,
		a.rejection_notes,
		a.rejection_reason,
		b.user_id,
		b.service_id,
		b.status,
		b.payment_status,
		b.scheduled_start_time,
		b.scheduled_end_time,
		b.actual_start_time,
		b.actual_end_time,
		b.actual_duration_minutes,
		b.quote_amount,
		b.contact_person,
		b.contact_phone,
		b.address,
		b.description,
		u.id,
		u.name,
		u.email,
		u.phone,
		u.has_active_subscription,
		s.id,
		s.name,
		s.price,
		w.id,
		w.name,
		w.phone,
		w.email
	FROM assignments a
	JOIN bookings b ON b.id = a.booking_id
	JOIN users u ON u.id = b.user_id
	JOIN services s ON s.id = b.service_id
	JOIN workers w ON w.user_id = a.worker_id
`

func scanWorkerAssignmentView(rows *sql.Rows) (WorkerAssignmentView, error) {
	var (
		view                                       WorkerAssignmentView
		id, bookingID, workerUserID, assignedBy    uuid.UUID
		customerID, serviceID, workerID            uuid.UUID
		status                                     string
		acceptedAt, rejectedAt, startedAt          *time.Time
		completedAt, actualStartAt, actualEndAt    *time.Time
		durationMinutes                            *int
		quoteAmount, servicePrice                  *float64
	)

	err := rows.Scan(
		&id,
		&bookingID,
		&workerUserID,
		&assignedBy,
		&status,
		&view.AssignedAt,
		&acceptedAt,
		&rejectedAt,
		&startedAt,
		&completedAt,
		&view.AssignmentNotes,
		&view.AcceptanceNotes,
		&view.RejectionNotes,
		&view.RejectionReason,
		&customerID,
		&serviceID,
		&view.Booking.Status,
		&view.Booking.PaymentStatus,
		&view.Booking.ScheduledStartTime,
		&view.Booking.ScheduledEndTime,
		&actualStartAt,
		&actualEndAt,
		&durationMinutes,
		&quoteAmount,
		&view.Booking.ContactPerson,
		&view.Booking.ContactPhone,
		&view.Booking.Address,
		&view.Booking.Description,
		&customerID,
		&view.Customer.Name,
		&view.Customer.Email,
		&view.Customer.Phone,
		&view.Customer.HasActiveSubscription,
		&serviceID,
		&view.Service.Name,
		&servicePrice,
		&workerID,
		&view.Worker.Name,
		&view.Worker.Phone,
		&view.Worker.Email,
	)
	if err != nil {
		return WorkerAssignmentView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return WorkerAssignmentView{}, err
	}
	if view.BookingID, err = kernel.UUIDFromBytes(bookingID[:]); err != nil {
		return WorkerAssignmentView{}, err
	}
	if view.WorkerID, err = kernel.UUIDFromBytes(workerUserID[:]); err != nil {
		return WorkerAssignmentView{}, err
	}
	if view.AssignedBy, err = kernel.UUIDFromBytes(assignedBy[:]); err != nil {
		return WorkerAssignmentView{}, err
	}
	if view.Customer.ID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return WorkerAssignmentView{}, err
	}
	if view.Service.ID, err = kernel.UUIDFromBytes(serviceID[:]); err != nil {
		return WorkerAssignmentView{}, err
	}
	if view.Worker.ID, err = kernel.UUIDFromBytes(workerID[:]); err != nil {
		return WorkerAssignmentView{}, err
	}
	if view.Status, err = assignment.StatusFromString(status); err != nil {
		return WorkerAssignmentView{}, err
	}

	view.Booking.UserID = view.Customer.ID
	view.Booking.ServiceID = view.Service.ID
	view.AcceptedAt = acceptedAt
	view.RejectedAt = rejectedAt
	view.StartedAt = startedAt
	view.CompletedAt = completedAt
	view.Booking.ActualStartTime = actualStartAt
	view.Booking.ActualEndTime = actualEndAt
	view.Booking.ActualDurationMinutes = durationMinutes
	view.Booking.QuoteAmount = quoteAmount
	view.Service.Price = servicePrice

	return view, nil
}
