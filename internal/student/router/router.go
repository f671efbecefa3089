// Package router provides student module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mentorhub/teamformation/internal/student/handler"
	"github.com/mentorhub/teamformation/internal/student/repository"
	"github.com/mentorhub/teamformation/internal/student/service"
)

// RegisterRoutes registers student module routes on the authenticated group.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	rg.GET("/available-students", h.AvailableStudents)
}
