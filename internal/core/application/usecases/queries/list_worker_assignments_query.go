// Package queries contains read operations for retrieving system state.
// Implements the Query side of the CQRS split: handlers read straight from
// the database and return wire-safe response models, bypassing the
// repositories the command handlers use.
package queries

import (
	"errors"
	"time"

	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/guard"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

var (
	ErrListWorkerAssignmentsQueryIsNotConstructed = errors.New(
		"ListWorkerAssignmentsQuery must be created via NewListWorkerAssignmentsQuery constructor",
	)
	ErrDateRangeIsInvalid = errors.New("dateFrom must not be after dateTo")
)

// ListWorkerAssignmentsQuery retrieves one page of the calling worker's
// assignments, newest assigned first. Results are always scoped to the
// worker; there is no way to list another worker's assignments through this
// query.
type ListWorkerAssignmentsQuery struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	status   *assignment.Status
	dateFrom *time.Time
	dateTo   *time.Time
	page     int
	limit    int

	guard guard.ConstructorGuard
}

// NewListWorkerAssignmentsQuery creates a listing query for the worker.
// Status and the date bounds are optional filters; dateFrom is inclusive and
// dateTo exclusive, both against assignedAt. Page defaults to 1 and limit to
// 10, capped at 100.
func NewListWorkerAssignmentsQuery(
	workerID kernel.UUID,
	status *assignment.Status,
	dateFrom, dateTo *time.Time,
	page, limit int,
) (ListWorkerAssignmentsQuery, error) {
	if err := workerID.Validate(); err != nil {
		return ListWorkerAssignmentsQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListWorkerAssignmentsQuery{}, err
		}
	}
	if dateFrom != nil && dateTo != nil && dateFrom.After(*dateTo) {
		return ListWorkerAssignmentsQuery{}, ErrDateRangeIsInvalid
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return ListWorkerAssignmentsQuery{
		workerID: workerID,
		status:   status,
		dateFrom: dateFrom,
		dateTo:   dateTo,
		page:     page,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListWorkerAssignmentsQueryIsNotConstructed if validation fails.
func (q ListWorkerAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrListWorkerAssignmentsQueryIsNotConstructed)
}

// WorkerID returns the worker whose assignments are listed.
func (q ListWorkerAssignmentsQuery) WorkerID() kernel.UUID {
	return q.workerID
}

// Status returns the optional status filter.
func (q ListWorkerAssignmentsQuery) Status() *assignment.Status {
	return q.status
}

// DateFrom returns the optional inclusive lower bound on assignedAt.
func (q ListWorkerAssignmentsQuery) DateFrom() *time.Time {
	return q.dateFrom
}

// DateTo returns the optional exclusive upper bound on assignedAt.
func (q ListWorkerAssignmentsQuery) DateTo() *time.Time {
	return q.dateTo
}

// Page returns the 1-based page number.
func (q ListWorkerAssignmentsQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q ListWorkerAssignmentsQuery) Limit() int {
	return q.limit
}
