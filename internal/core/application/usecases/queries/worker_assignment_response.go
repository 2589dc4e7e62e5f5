package queries

import (
	"time"

	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"
)

// WorkerAssignmentView is one fully loaded read-model row: the assignment
// together with its booking, the booking's customer and service, and the
// worker profile. The query handlers build it from a join; every relation is
// present by construction, a missing one is a bug in the query, not a
// runtime condition to recover from.
type WorkerAssignmentView struct {
	ID              kernel.UUID
	BookingID       kernel.UUID
	WorkerID        kernel.UUID
	AssignedBy      kernel.UUID
	Status          assignment.Status
	AssignedAt      time.Time
	AcceptedAt      *time.Time
	RejectedAt      *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	AssignmentNotes string
	AcceptanceNotes string
	RejectionNotes  string
	RejectionReason string
	Booking         BookingView
	Customer        CustomerView
	Service         ServiceView
	Worker          WorkerView
}

// BookingView carries the booking fields the worker-facing read model needs.
type BookingView struct {
	UserID                kernel.UUID
	ServiceID             kernel.UUID
	Status                string
	PaymentStatus         string
	ScheduledStartTime    time.Time
	ScheduledEndTime      time.Time
	ActualStartTime       *time.Time
	ActualEndTime         *time.Time
	ActualDurationMinutes *int
	QuoteAmount           *float64
	ContactPerson         string
	ContactPhone          string
	Address               string
	Description           string
}

// CustomerView is the booking owner as loaded from storage, personal phone
// included. The projection is the only consumer and never lets the phone
// through.
type CustomerView struct {
	ID                    kernel.UUID
	Name                  string
	Email                 string
	Phone                 string
	HasActiveSubscription bool
}

// ServiceView is the catalog service the booking refers to.
type ServiceView struct {
	ID    kernel.UUID
	Name  string
	Price *float64
}

// WorkerView is the worker profile bound to the assignment.
type WorkerView struct {
	ID    kernel.UUID
	Name  string
	Phone string
	Email string
}

// WorkerAssignmentResponse is the wire-safe worker-facing read model of one
// assignment.
type WorkerAssignmentResponse struct {
	ID              string     `json:"id"`
	BookingID       string     `json:"booking_id"`
	WorkerID        string     `json:"worker_id"`
	AssignedBy      string     `json:"assigned_by"`
	Status          string     `json:"status"`
	AssignedAt      time.Time  `json:"assigned_at"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	AssignmentNotes string     `json:"assignment_notes"`
	AcceptanceNotes string     `json:"acceptance_notes"`
	RejectionNotes  string     `json:"rejection_notes"`
	RejectionReason string     `json:"rejection_reason"`

	Booking BookingResponse `json:"booking"`
	Worker  WorkerResponse  `json:"worker"`
}

// BookingResponse is the booking as exposed to the worker. The on-site
// contact person and phone stay in: the worker needs them to do the job.
type BookingResponse struct {
	Status                string     `json:"status"`
	PaymentStatus         string     `json:"payment_status"`
	ScheduledStartTime    time.Time  `json:"scheduled_start_time"`
	ScheduledEndTime      time.Time  `json:"scheduled_end_time"`
	ActualStartTime       *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime         *time.Time `json:"actual_end_time,omitempty"`
	ActualDurationMinutes *int       `json:"actual_duration_minutes,omitempty"`
	QuoteAmount           *float64   `json:"quote_amount,omitempty"`
	ContactPerson         string     `json:"contact_person"`
	ContactPhone          string     `json:"contact_phone"`
	Address               string     `json:"address"`
	Description           string     `json:"description"`

	Customer CustomerResponse `json:"customer"`
	Service  ServiceResponse  `json:"service"`
}

// CustomerResponse is the booking owner as exposed to the worker. There is
// deliberately no phone field: the customer's personal number must never
// reach a worker, call masking is the only channel between them.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	Subscription SubscriptionResponse `json:"subscription"`

	// NotificationSettings is a placeholder kept for response-shape
	// compatibility; it is never populated for workers.
	NotificationSettings *NotificationSettingsResponse `json:"notification_settings"`
}

// SubscriptionResponse replaces the customer's full subscription record with
// the one bit workers may see.
type SubscriptionResponse struct {
	Active bool `json:"active"`
}

// NotificationSettingsResponse is the shape of the customer notification
// settings placeholder.
type NotificationSettingsResponse struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Push  bool `json:"push"`
}

// ServiceResponse is the catalog service as exposed to the worker.
type ServiceResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price *float64 `json:"price,omitempty"`
}

// WorkerResponse is the worker's own profile echoed back in the response.
type WorkerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewWorkerAssignmentResponse projects a fully loaded assignment view onto
// the wire-safe response. Total and pure: every view maps to exactly one
// response, the customer's phone is dropped unconditionally and the
// subscription collapses to its active flag.
func NewWorkerAssignmentResponse(view WorkerAssignmentView) WorkerAssignmentResponse {
	return WorkerAssignmentResponse{
		ID:              view.ID.String(),
		BookingID:       view.BookingID.String(),
		WorkerID:        view.WorkerID.String(),
		AssignedBy:      view.AssignedBy.String(),
		Status:          view.Status.String(),
		AssignedAt:      view.AssignedAt,
		AcceptedAt:      view.AcceptedAt,
		RejectedAt:      view.RejectedAt,
		StartedAt:       view.StartedAt,
		CompletedAt:     view.CompletedAt,
		AssignmentNotes: view.AssignmentNotes,
		AcceptanceNotes: view.AcceptanceNotes,
		RejectionNotes:  view.RejectionNotes,
		RejectionReason: view.RejectionReason,
		Booking: BookingResponse{
			Status:                view.Booking.Status,
			PaymentStatus:         view.Booking.PaymentStatus,
			ScheduledStartTime:    view.Booking.ScheduledStartTime,
			ScheduledEndTime:      view.Booking.ScheduledEndTime,
			ActualStartTime:       view.Booking.ActualStartTime,
			ActualEndTime:         view.Booking.ActualEndTime,
			ActualDurationMinutes: view.Booking.ActualDurationMinutes,
			QuoteAmount:           view.Booking.QuoteAmount,
			ContactPerson:         view.Booking.ContactPerson,
			ContactPhone:          view.Booking.ContactPhone,
			Address:               view.Booking.Address,
			Description:           view.Booking.Description,
			Customer: CustomerResponse{
				ID:    view.Customer.ID.String(),
				Name:  view.Customer.Name,
				Email: view.Customer.Email,
				Subscription: SubscriptionResponse{
					Active: view.Customer.HasActiveSubscription,
				},
				NotificationSettings: nil,
			},
			Service: ServiceResponse{
				ID:    view.Service.ID.String(),
				Name:  view.Service.Name,
				Price: view.Service.Price,
			},
		},
		Worker: WorkerResponse{
			ID:    view.Worker.ID.String(),
			Name:  view.Worker.Name,
			Phone: view.Worker.Phone,
			Email: view.Worker.Email,
		},
	}
}
