package worker

import (
	"errors"
	"fmt"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/errs"
)

var (
	// ErrWorkerIsNotConstructed is returned when a Worker instance was not
	// created through RestoreWorker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via RestoreWorker constructor")
)

// Worker is a field service professional. The assignment flow reads workers
// to resolve the user behind an assignment to a worker profile; the running
// stats on the profile are mutated only through the repository's atomic
// increment, never through this entity.
type Worker struct {
	// id is the unique identifier of the worker profile
	id kernel.UUID

	// userID is the platform user account the profile belongs to.
	// Assignments reference workers by this ID, not by the profile ID.
	userID kernel.UUID

	// name, phone and email are the worker's contact details
	name  string
	phone string
	email string

	// completedJobCount and cumulativeEarnings are running totals
	completedJobCount  int
	cumulativeEarnings float64

	// isConstructed ensures the worker was created via RestoreWorker
	isConstructed bool
}

// RestoreWorker rehydrates a Worker from persistence. Worker onboarding
// happens outside the assignment flow, so there is no NewWorker here.
func RestoreWorker(
	id kernel.UUID,
	userID kernel.UUID,
	name string,
	phone string,
	email string,
	completedJobCount int,
	cumulativeEarnings float64,
) (*Worker, error) {
	w := &Worker{
		name:               name,
		phone:              phone,
		email:              email,
		completedJobCount:  completedJobCount,
		cumulativeEarnings: cumulativeEarnings,
		isConstructed:      true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setUserID(userID),
	); err != nil {
		return nil, err
	}

	if completedJobCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("completedJobCount",
			fmt.Errorf("%d is negative", completedJobCount))
	}

	return w, nil
}

// Validate ensures the Worker instance was properly constructed through
// RestoreWorker.
func (w *Worker) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkerIsNotConstructed
	}
	return nil
}

// ID returns the worker profile's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// UserID returns the platform user account behind the profile.
func (w *Worker) UserID() kernel.UUID {
	return w.userID
}

// Name returns the worker's display name.
func (w *Worker) Name() string {
	return w.name
}

// Phone returns the worker's contact phone.
func (w *Worker) Phone() string {
	return w.phone
}

// Email returns the worker's contact email.
func (w *Worker) Email() string {
	return w.email
}

// CompletedJobCount returns the number of jobs the worker has completed.
func (w *Worker) CompletedJobCount() int {
	return w.completedJobCount
}

// CumulativeEarnings returns the worker's lifetime earnings.
func (w *Worker) CumulativeEarnings() float64 {
	return w.cumulativeEarnings
}

// setID validates and sets the worker profile identifier.
func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	w.id = id
	return nil
}

// setUserID validates and sets the user account identifier.
func (w *Worker) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return fmt.Errorf("userId: %w", err)
	}
	w.userID = userID
	return nil
}
