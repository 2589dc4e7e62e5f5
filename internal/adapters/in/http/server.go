// Package http exposes the worker-facing assignment API on echo. The adapter
// stays thin: it parses transport concerns, hands commands and queries to the
// application layer and maps error kinds onto status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fieldwork/internal/core/application/usecases/commands"
	"fieldwork/internal/core/application/usecases/queries"
	"fieldwork/internal/core/domain/model/assignment"
	"fieldwork/internal/core/domain/model/kernel"
	"fieldwork/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	acceptHandler   commands.AcceptAssignmentCommandHandler
	rejectHandler   commands.RejectAssignmentCommandHandler
	startHandler    commands.StartAssignmentCommandHandler
	completeHandler commands.CompleteAssignmentCommandHandler

	// Query handlers
	listHandler queries.ListWorkerAssignmentsQueryHandler
	getHandler  queries.GetWorkerAssignmentQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	acceptHandler commands.AcceptAssignmentCommandHandler,
	rejectHandler commands.RejectAssignmentCommandHandler,
	startHandler commands.StartAssignmentCommandHandler,
	completeHandler commands.CompleteAssignmentCommandHandler,
	listHandler queries.ListWorkerAssignmentsQueryHandler,
	getHandler queries.GetWorkerAssignmentQueryHandler,
) *Server {
	return &Server{
		acceptHandler:   acceptHandler,
		rejectHandler:   rejectHandler,
		startHandler:    startHandler,
		completeHandler: completeHandler,
		listHandler:     listHandler,
		getHandler:      getHandler,
	}
}

// RegisterRoutes attaches the assignment API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	group := e.Group("/api/v1")
	group.GET("/assignments", s.ListAssignments)
	group.GET("/assignments/:id", s.GetAssignment)
	group.POST("/assignments/:id/accept", s.AcceptAssignment)
	group.POST("/assignments/:id/reject", s.RejectAssignment)
	group.POST("/assignments/:id/start", s.StartAssignment)
	group.POST("/assignments/:id/complete", s.CompleteAssignment)
}

// AcceptAssignment handles POST /api/v1/assignments/:id/accept.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	assignmentID, workerID, err := identifiers(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request AcceptAssignmentRequest
	if err = ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	cmd, err := commands.NewAcceptAssignmentCommand(assignmentID, workerID, request.AcceptanceNotes)
	if err != nil {
		return badRequest(ctx, err)
	}

	updated, err := s.acceptHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorStatus(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(updated))
}

// RejectAssignment handles POST /api/v1/assignments/:id/reject.
func (s *Server) RejectAssignment(ctx echo.Context) error {
	assignmentID, workerID, err := identifiers(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request RejectAssignmentRequest
	if err = ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	cmd, err := commands.NewRejectAssignmentCommand(assignmentID, workerID, request.RejectionReason, request.RejectionNotes)
	if err != nil {
		return badRequest(ctx, err)
	}

	updated, err := s.rejectHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorStatus(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(updated))
}

// StartAssignment handles POST /api/v1/assignments/:id/start.
func (s *Server) StartAssignment(ctx echo.Context) error {
	assignmentID, workerID, err := identifiers(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewStartAssignmentCommand(assignmentID, workerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	updated, err := s.startHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorStatus(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(updated))
}

// CompleteAssignment handles POST /api/v1/assignments/:id/complete.
func (s *Server) CompleteAssignment(ctx echo.Context) error {
	assignmentID, workerID, err := identifiers(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CompleteAssignmentRequest
	if err = ctx.Bind(&request); err != nil {
		return invalidBody(ctx)
	}

	cmd, err := commands.NewCompleteAssignmentCommand(
		assignmentID, workerID,
		request.CompletionNotes, request.MaterialsUsed, request.Photos,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	updated, err := s.completeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorStatus(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(updated))
}

// ListAssignments handles GET /api/v1/assignments. Supported query
// parameters: status, date_from, date_to, page, limit.
func (s *Server) ListAssignments(ctx echo.Context) error {
	workerID, err := workerID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var status *assignment.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := assignment.StatusFromString(raw)
		if parseErr != nil {
			return badRequest(ctx, parseErr)
		}
		status = &parsed
	}

	dateFrom, err := dateParam(ctx, "date_from")
	if err != nil {
		return badRequest(ctx, err)
	}
	dateTo, err := dateParam(ctx, "date_to")
	if err != nil {
		return badRequest(ctx, err)
	}

	page, err := intParam(ctx, "page")
	if err != nil {
		return badRequest(ctx, err)
	}
	limit, err := intParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewListWorkerAssignmentsQuery(workerID, status, dateFrom, dateTo, page, limit)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.listHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorStatus(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAssignment handles GET /api/v1/assignments/:id.
func (s *Server) GetAssignment(ctx echo.Context) error {
	assignmentID, workerID, err := identifiers(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetWorkerAssignmentQuery(assignmentID, workerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.getHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorStatus(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

func identifiers(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	assignmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	requester, err := workerID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return assignmentID, requester, nil
}

func workerID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(workerIDHeader))
}

func dateParam(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	return &parsed, nil
}

func intParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	return value, nil
}

func toAssignmentResponse(a *assignment.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:              a.ID().String(),
		BookingID:       a.BookingID().String(),
		WorkerID:        a.WorkerID().String(),
		AssignedBy:      a.AssignedBy().String(),
		Status:          a.Status().String(),
		AssignedAt:      a.AssignedAt(),
		AcceptedAt:      a.AcceptedAt(),
		RejectedAt:      a.RejectedAt(),
		StartedAt:       a.StartedAt(),
		CompletedAt:     a.CompletedAt(),
		AssignmentNotes: a.AssignmentNotes(),
		AcceptanceNotes: a.AcceptanceNotes(),
		RejectionNotes:  a.RejectionNotes(),
		RejectionReason: a.RejectionReason(),
	}
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}

// errorStatus maps application error kinds onto status codes. Not-found and
// unauthorized deliberately share one 404 shape so the API never confirms a
// foreign assignment exists.
func errorStatus(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrAssignmentNotFound),
		errors.Is(err, commands.ErrUnauthorizedAssignmentAccess),
		errors.Is(err, queries.ErrAssignmentNotFound),
		errors.Is(err, queries.ErrUnauthorizedAssignmentAccess):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "assignment not found or access denied",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, assignment.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		return badRequest(ctx, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}
