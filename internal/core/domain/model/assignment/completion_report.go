package assignment

import (
	"errors"

	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/guard"
)

// ErrCompletionReportIsNotConstructed is returned when a CompletionReport was
// not created via NewCompletionReport.
var ErrCompletionReportIsNotConstructed = errors.New(
	"CompletionReport must be created via NewCompletionReport constructor",
)

// CompletionReport is the worker-supplied record attached to a completed
// assignment: free-form notes plus the lists of materials used and photo
// references. It is persisted in the same transaction as the Complete
// transition.
type CompletionReport struct {
	assignmentID  kernel.UUID
	notes         string
	materialsUsed []string
	photos        []string

	guard guard.ConstructorGuard
}

// NewCompletionReport creates a completion report for the given assignment.
// Notes, materials and photos may all be empty.
func NewCompletionReport(
	assignmentID kernel.UUID,
	notes string,
	materialsUsed, photos []string,
) (CompletionReport, error) {
	if err := assignmentID.Validate(); err != nil {
		return CompletionReport{}, err
	}

	return CompletionReport{
		assignmentID:  assignmentID,
		notes:         notes,
		materialsUsed: materialsUsed,
		photos:        photos,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the report was created through the constructor.
func (r CompletionReport) Validate() error {
	return r.guard.Validate(ErrCompletionReportIsNotConstructed)
}

// AssignmentID returns the assignment the report belongs to.
func (r CompletionReport) AssignmentID() kernel.UUID {
	return r.assignmentID
}

// Notes returns the worker's completion notes.
func (r CompletionReport) Notes() string {
	return r.notes
}

// MaterialsUsed returns the list of materials the worker reported.
func (r CompletionReport) MaterialsUsed() []string {
	return r.materialsUsed
}

// Photos returns the photo references the worker uploaded.
func (r CompletionReport) Photos() []string {
	return r.photos
}
