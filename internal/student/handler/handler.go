// Package handler provides HTTP handlers for student endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mentorhub/teamformation/internal/middleware"
	"github.com/mentorhub/teamformation/internal/student/service"
)

// Handler handles HTTP requests for student endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new student handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// AvailableStudents handles GET /teamformation/available-students request.
func (h *Handler) AvailableStudents(c *gin.Context) {
	callerID := middleware.StudentID(c)
	search := c.Query("search")

	resp, err := h.service.AvailableStudents(c.Request.Context(), callerID, search)
	if err != nil {
		h.logger.Errorw("error searching available students", "student_id", callerID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
