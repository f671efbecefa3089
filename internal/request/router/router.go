// Package router provides request module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mentorhub/teamformation/internal/request/handler"
	"github.com/mentorhub/teamformation/internal/request/repository"
	"github.com/mentorhub/teamformation/internal/request/service"
)

// RegisterRoutes registers request module routes on the authenticated group.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	rg.POST("/send-request", h.SendRequest)
	rg.POST("/send-join-request", h.SendJoinRequest)
	rg.POST("/accept-request", h.AcceptRequest)
	rg.POST("/reject-request", h.RejectRequest)
	rg.POST("/accept-join-request", h.AcceptJoinRequest)
	rg.POST("/reject-join-request", h.RejectJoinRequest)
	rg.POST("/add-student", h.AddStudent)

	rg.GET("/join-requests", h.JoinRequests)
	rg.GET("/sent-user-requests", h.SentUserRequests)
	rg.GET("/received-requests", h.ReceivedRequests)
	rg.GET("/all-team-requests", h.AllTeamRequests)

	rg.DELETE("/delete-requests", h.DeleteRequests)
}
