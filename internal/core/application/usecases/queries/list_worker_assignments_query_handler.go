package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// ListWorkerAssignmentsQueryResponse is one page of the worker's assignments
// plus the pagination window.
type ListWorkerAssignmentsQueryResponse struct {
	Assignments []WorkerAssignmentResponse `json:"assignments"`
	Pagination  Pagination                 `json:"pagination"`
}

// ListWorkerAssignmentsQueryHandler serves the worker's assignment listing
// straight from the database with a raw join, bypassing the command-side
// repositories.
type ListWorkerAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewListWorkerAssignmentsQueryHandler creates a handler for assignment
// listing queries.
func NewListWorkerAssignmentsQueryHandler(db *gorm.DB) ListWorkerAssignmentsQueryHandler {
	return ListWorkerAssignmentsQueryHandler{db: db}
}

// Handle executes the listing query. Results are scoped to the worker,
// filtered by status and assignedAt bounds when set, ordered newest assigned
// first and projected through the privacy mapping.
func (h ListWorkerAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query ListWorkerAssignmentsQuery,
) (ListWorkerAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListWorkerAssignmentsQueryResponse{}, err
	}

	var conditions strings.Builder
	conditions.WriteString("WHERE a.worker_id = ?")
	args := []any{query.WorkerID().Bytes()}

	if status := query.Status(); status != nil {
		conditions.WriteString(" AND a.status = ?")
		args = append(args, status.String())
	}
	if from := query.DateFrom(); from != nil {
		conditions.WriteString(" AND a.assigned_at >= ?")
		args = append(args, *from)
	}
	if to := query.DateTo(); to != nil {
		conditions.WriteString(" AND a.assigned_at < ?")
		args = append(args, *to)
	}

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM assignments a "+conditions.String(), args...).
		Scan(&total).Error
	if err != nil {
		return ListWorkerAssignmentsQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()
	args = append(args, query.Limit(), offset)

	rows, err := h.db.WithContext(ctx).Raw(
		workerAssignmentSelect+conditions.String()+
			" ORDER BY a.assigned_at DESC LIMIT ? OFFSET ?",
		args...,
	).Rows()
	if err != nil {
		return ListWorkerAssignmentsQueryResponse{}, err
	}
	defer rows.Close()

	assignments := make([]WorkerAssignmentResponse, 0)
	for rows.Next() {
		view, scanErr := scanWorkerAssignmentView(rows)
		if scanErr != nil {
			return ListWorkerAssignmentsQueryResponse{}, scanErr
		}
		assignments = append(assignments, NewWorkerAssignmentResponse(view))
	}
	if err = rows.Err(); err != nil {
		return ListWorkerAssignmentsQueryResponse{}, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(query.Limit()) - 1) / int64(query.Limit()))
	}

	return ListWorkerAssignmentsQueryResponse{
		Assignments: assignments,
		Pagination: Pagination{
			Page:       query.Page(),
			Limit:      query.Limit(),
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
