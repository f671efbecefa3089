// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mentorhub/teamformation/internal/team/handler"
	"github.com/mentorhub/teamformation/internal/team/repository"
	"github.com/mentorhub/teamformation/internal/team/service"
)

// RegisterRoutes registers team module routes on the authenticated group.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	rg.GET("/my-team", h.MyTeam)
}
