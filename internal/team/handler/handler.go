// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mentorhub/teamformation/internal/middleware"
	studentModel "github.com/mentorhub/teamformation/internal/student/model"
	teamModel "github.com/mentorhub/teamformation/internal/team/model"
	"github.com/mentorhub/teamformation/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// MyTeam handles GET /teamformation/my-team request.
func (h *Handler) MyTeam(c *gin.Context) {
	studentID := middleware.StudentID(c)

	resp, err := h.service.MyTeam(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, studentModel.ErrStudentNotFound) {
			errorResponse(c, "NOT_FOUND", "student not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			errorResponse(c, "NOT_FOUND", "team not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("error getting team", "student_id", studentID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
