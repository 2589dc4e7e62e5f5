package http

import "time"

// workerIDHeader carries the authenticated worker's user identifier. Auth
// proper happens upstream; this adapter trusts the header the gateway set.
const workerIDHeader = "X-Worker-ID"

// AcceptAssignmentRequest is the body of POST /assignments/:id/accept.
type AcceptAssignmentRequest struct {
	AcceptanceNotes string `json:"acceptance_notes"`
}

// RejectAssignmentRequest is the body of POST /assignments/:id/reject.
type RejectAssignmentRequest struct {
	RejectionReason string `json:"rejection_reason"`
	RejectionNotes  string `json:"rejection_notes"`
}

// CompleteAssignmentRequest is the body of POST /assignments/:id/complete.
type CompleteAssignmentRequest struct {
	CompletionNotes string   `json:"completion_notes"`
	MaterialsUsed   []string `json:"materials_used"`
	Photos          []string `json:"photos"`
}

// AssignmentResponse is the transition endpoints' view of an assignment.
// The listing and lookup endpoints return the richer read-model projection
// instead.
type AssignmentResponse struct {
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
	AssignmentNotes string     `json:"assignment_notes,omitempty"`
	AcceptanceNotes string     `json:"acceptance_notes,omitempty"`
	RejectionNotes  string     `json:"rejection_notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// ErrorResponse is the error body every endpoint shares.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
