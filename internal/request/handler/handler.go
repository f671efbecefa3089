// Package handler provides HTTP handlers for request endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mentorhub/teamformation/internal/middleware"
	requestModel "github.com/mentorhub/teamformation/internal/request/model"
	"github.com/mentorhub/teamformation/internal/request/service"
	studentModel "github.com/mentorhub/teamformation/internal/student/model"
	teamModel "github.com/mentorhub/teamformation/internal/team/model"
)

// Handler handles HTTP requests for request endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new request handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// SendRequest handles POST /teamformation/send-request request.
func (h *Handler) SendRequest(c *gin.Context) {
	var req requestModel.SendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	callerID := middleware.StudentID(c)

	resp, err := h.service.SendRequest(c.Request.Context(), callerID, &req)
	if err != nil {
		h.mapError(c, err, "error sending team request", callerID)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// SendJoinRequest handles POST /teamformation/send-join-request request.
func (h *Handler) SendJoinRequest(c *gin.Context) {
	var req requestModel.SendJoinRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	callerID := middleware.StudentID(c)

	resp, err := h.service.SendJoinRequest(c.Request.Context(), callerID, req.TeamID)
	if err != nil {
		h.mapError(c, err, "error sending join request", callerID)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// AcceptRequest handles POST /teamformation/accept-request request.
func (h *Handler) AcceptRequest(c *gin.Context) {
	h.resolveRequest(c, h.service.AcceptInvitation, "error accepting invitation")
}

// RejectRequest handles POST /teamformation/reject-request request.
func (h *Handler) RejectRequest(c *gin.Context) {
	h.resolveRequest(c, h.service.RejectInvitation, "error rejecting invitation")
}

// AcceptJoinRequest handles POST /teamformation/accept-join-request request.
func (h *Handler) AcceptJoinRequest(c *gin.Context) {
	h.resolveRequest(c, h.service.AcceptJoinRequest, "error accepting join request")
}

// RejectJoinRequest handles POST /teamformation/reject-join-request request.
func (h *Handler) RejectJoinRequest(c *gin.Context) {
	h.resolveRequest(c, h.service.RejectJoinRequest, "error rejecting join request")
}

// resolveRequest binds the shared resolve payload and dispatches to the
// given service operation.
func (h *Handler) resolveRequest(
	c *gin.Context,
	op func(ctx context.Context, callerID, requestID string) (*requestModel.RequestInfo, error),
	logMsg string,
) {
	var req requestModel.ResolveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	callerID := middleware.StudentID(c)

	resp, err := op(c.Request.Context(), callerID, req.RequestID)
	if err != nil {
		h.mapError(c, err, logMsg, callerID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddStudent handles POST /teamformation/add-student request.
func (h *Handler) AddStudent(c *gin.Context) {
	var req requestModel.AddStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	callerID := middleware.StudentID(c)

	resp, err := h.service.AddStudents(c.Request.Context(), callerID, req.StudentIDs)
	if err != nil {
		h.mapError(c, err, "error inviting students", callerID)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// JoinRequests handles GET /teamformation/join-requests request.
func (h *Handler) JoinRequests(c *gin.Context) {
	callerID := middleware.StudentID(c)

	resp, err := h.service.ListJoinRequests(c.Request.Context(), callerID)
	if err != nil {
		h.mapError(c, err, "error listing join requests", callerID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SentUserRequests handles GET /teamformation/sent-user-requests request.
func (h *Handler) SentUserRequests(c *gin.Context) {
	callerID := middleware.StudentID(c)

	resp, err := h.service.ListSentInvitations(c.Request.Context(), callerID)
	if err != nil {
		h.mapError(c, err, "error listing sent invitations", callerID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ReceivedRequests handles GET /teamformation/received-requests request.
func (h *Handler) ReceivedRequests(c *gin.Context) {
	callerID := middleware.StudentID(c)

	resp, err := h.service.ListReceivedInvitations(c.Request.Context(), callerID)
	if err != nil {
		h.mapError(c, err, "error listing received invitations", callerID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AllTeamRequests handles GET /teamformation/all-team-requests request.
func (h *Handler) AllTeamRequests(c *gin.Context) {
	callerID := middleware.StudentID(c)

	resp, err := h.service.ListAllPending(c.Request.Context())
	if err != nil {
		h.mapError(c, err, "error listing pending requests", callerID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteRequests handles DELETE /teamformation/delete-requests request.
func (h *Handler) DeleteRequests(c *gin.Context) {
	callerID := middleware.StudentID(c)

	resp, err := h.service.DeleteStale(c.Request.Context())
	if err != nil {
		h.mapError(c, err, "error purging stale requests", callerID)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// mapError translates domain errors into the API error envelope.
func (h *Handler) mapError(c *gin.Context, err error, logMsg, callerID string) {
	switch {
	case errors.Is(err, teamModel.ErrInvalidTeamName):
		errorResponse(c, "VALIDATION_ERROR", "team name cannot be empty", http.StatusBadRequest)
	case errors.Is(err, requestModel.ErrEmptyRecipients):
		errorResponse(c, "VALIDATION_ERROR", "at least one student must be selected", http.StatusBadRequest)
	case errors.Is(err, requestModel.ErrSelfRequest):
		errorResponse(c, "VALIDATION_ERROR", "cannot send a request to yourself", http.StatusBadRequest)
	case errors.Is(err, requestModel.ErrCapacityExceeded):
		errorResponse(c, "CAPACITY_EXCEEDED", "selection exceeds team size limit", http.StatusBadRequest)
	case errors.Is(err, studentModel.ErrStudentNotFound):
		errorResponse(c, "NOT_FOUND", "student not found", http.StatusNotFound)
	case errors.Is(err, teamModel.ErrTeamNotFound):
		errorResponse(c, "NOT_FOUND", "team not found", http.StatusNotFound)
	case errors.Is(err, requestModel.ErrRequestNotFound):
		errorResponse(c, "NOT_FOUND", "request not found", http.StatusNotFound)
	case errors.Is(err, requestModel.ErrNotRequestRecipient):
		errorResponse(c, "FORBIDDEN", "request is not addressed to you", http.StatusForbidden)
	case errors.Is(err, requestModel.ErrNotTeamLead):
		errorResponse(c, "FORBIDDEN", "only the team lead may do this", http.StatusForbidden)
	case errors.Is(err, requestModel.ErrRequestAlreadyResolved):
		errorResponse(c, "REQUEST_RESOLVED", "request was already resolved", http.StatusConflict)
	case errors.Is(err, requestModel.ErrDuplicateRequest):
		errorResponse(c, "DUPLICATE_REQUEST", "a pending request for this team already exists", http.StatusConflict)
	case errors.Is(err, requestModel.ErrAlreadyInTeam), errors.Is(err, teamModel.ErrAlreadyInTeam):
		errorResponse(c, "ALREADY_IN_TEAM", "student already belongs to a team", http.StatusConflict)
	case errors.Is(err, requestModel.ErrRecipientInTeam):
		errorResponse(c, "STUDENT_IN_TEAM", "invited student already belongs to a team", http.StatusConflict)
	case errors.Is(err, teamModel.ErrTeamExists):
		errorResponse(c, "TEAM_EXISTS", "team name already taken", http.StatusConflict)
	case errors.Is(err, teamModel.ErrTeamFull):
		errorResponse(c, "TEAM_FULL", "team is already full", http.StatusConflict)
	default:
		h.logger.Errorw(logMsg, "student_id", callerID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
