package assignment

import (
	"errors"
	"fmt"

	"fieldwork/internal/pkg/errs"
)

// ErrInvalidStateTransition is returned whenever an operation is attempted
// from a status that does not allow it. Callers classify transition failures
// with errors.Is against this sentinel.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// Status represents the lifecycle state of a worker assignment.
// It implements a state machine with a fixed transition set:
//
//	Assigned ──> Accepted ──> InProgress ──> Completed
//	    │
//	    └──────> Rejected
//
// Accepted, Rejected without a subsequent operation, and Completed are all
// reachable; Rejected and Completed are final. There are no reverse edges:
// once a transition commits it is permanent.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Assigned is the initial status, set by the dispatch flow when a worker
	// is bound to a booking. The worker has not yet responded.
	Assigned

	// Accepted indicates the worker accepted the assignment.
	Accepted

	// Rejected indicates the worker rejected the assignment. Final.
	Rejected

	// InProgress indicates the worker started the job on site.
	InProgress

	// Completed indicates the job has been finished. Final.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Assigned:   "assigned",
		Accepted:   "accepted",
		Rejected:   "rejected",
		InProgress: "in_progress",
		Completed:  "completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigned:   "assigned",
		Accepted:   "accepted",
		Rejected:   "rejected",
		InProgress: "in_progress",
		Completed:  "completed",
	}
}

// StatusFromString parses the persisted or transported representation of a
// status. Returns an error for anything outside the valid set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value belongs to the valid set.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no further transitions are allowed from s.
func (s Status) IsFinal() bool {
	return s == Rejected || s == Completed
}

func transitionError(from Status, operation string) error {
	return fmt.Errorf("%w: cannot %s assignment in status %s", ErrInvalidStateTransition, operation, from)
}

// Accept transitions Assigned -> Accepted.
func (s Status) Accept() (Status, error) {
	if s != Assigned {
		return Unknown, transitionError(s, "accept")
	}
	return Accepted, nil
}

// Reject transitions Assigned -> Rejected.
func (s Status) Reject() (Status, error) {
	if s != Assigned {
		return Unknown, transitionError(s, "reject")
	}
	return Rejected, nil
}

// Start transitions Accepted -> InProgress.
func (s Status) Start() (Status, error) {
	if s != Accepted {
		return Unknown, transitionError(s, "start")
	}
	return InProgress, nil
}

// Complete transitions InProgress -> Completed.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return Unknown, transitionError(s, "complete")
	}
	return Completed, nil
}
