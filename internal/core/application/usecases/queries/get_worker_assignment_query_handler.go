package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetWorkerAssignmentQueryHandler retrieves one fully loaded assignment for
// the calling worker.
type GetWorkerAssignmentQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkerAssignmentQueryHandler creates a handler for single-assignment
// lookups.
func NewGetWorkerAssignmentQueryHandler(db *gorm.DB) GetWorkerAssignmentQueryHandler {
	return GetWorkerAssignmentQueryHandler{db: db}
}

// Handle executes the lookup. A missing assignment and someone else's
// assignment fail with distinct sentinels carrying the same message.
func (h GetWorkerAssignmentQueryHandler) Handle(
	ctx context.Context,
	query GetWorkerAssignmentQuery,
) (WorkerAssignmentResponse, error) {
	if err := query.Validate(); err != nil {
		return WorkerAssignmentResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		workerAssignmentSelect+"WHERE a.id = ?",
		query.AssignmentID().Bytes(),
	).Rows()
	if err != nil {
		return WorkerAssignmentResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return WorkerAssignmentResponse{}, err
		}
		return WorkerAssignmentResponse{}, ErrAssignmentNotFound
	}

	view, err := scanWorkerAssignmentView(rows)
	if err != nil {
		return WorkerAssignmentResponse{}, err
	}

	if !view.WorkerID.IsEqual(query.WorkerID()) {
		return WorkerAssignmentResponse{}, ErrUnauthorizedAssignmentAccess
	}

	return NewWorkerAssignmentResponse(view), nil
}
