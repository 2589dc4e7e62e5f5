package booking

import (
	"fmt"

	"fieldwork/internal/pkg/errs"
)

// Status represents the booking lifecycle state as seen by the orchestrator.
// Bookings are owned by the booking subsystem; this package models only the
// states and transitions the assignment flow is allowed to touch.
//
// State transitions driven from here:
//
//	Pending ──> Confirmed ──> InProgress ──> Completed
//	               │ ▲
//	               └─┘
//	      (repeat confirm allowed)
//
// Cancelled exists so persisted bookings can be rehydrated, but no transition
// in this package produces it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the booking is created but no worker has committed to it.
	Pending

	// Confirmed means an assigned worker has accepted the booking.
	Confirmed

	// InProgress means the worker has started the work on site.
	InProgress

	// Completed means the work is finished. Final state.
	Completed

	// Cancelled means the booking was withdrawn. Final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[string]Status {
	return map[string]Status{
		"pending":     Pending,
		"confirmed":   Confirmed,
		"in_progress": InProgress,
		"completed":   Completed,
		"cancelled":   Cancelled,
	}
}

// StatusFromString converts the persisted string form back into a Status.
func StatusFromString(value string) (Status, error) {
	if status, ok := getValidStatusStrings()[value]; ok {
		return status, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%s is not a valid booking status", value))
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid booking status", s))
	}
	return nil
}

// String returns the persisted string form of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Confirm transitions the booking to Confirmed when a worker accepts it.
// Confirming an already confirmed booking is allowed so that a repeated
// acceptance attempt does not corrupt the booking.
func (s Status) Confirm() (Status, error) {
	if s != Pending && s != Confirmed {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid booking status to confirm", s))
	}
	return Confirmed, nil
}

// StartWork transitions the booking to InProgress.
func (s Status) StartWork() (Status, error) {
	if s != Confirmed {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid booking status to start work", s))
	}
	return InProgress, nil
}

// CompleteWork transitions the booking to Completed.
func (s Status) CompleteWork() (Status, error) {
	if s != InProgress {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid booking status to complete work", s))
	}
	return Completed, nil
}
