// Package main provides the entry point for the team formation HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mentorhub/teamformation/internal/config"
	"github.com/mentorhub/teamformation/internal/database/database"
	"github.com/mentorhub/teamformation/internal/database/migrate"
	"github.com/mentorhub/teamformation/internal/health"
	"github.com/mentorhub/teamformation/internal/middleware"
	requestRouter "github.com/mentorhub/teamformation/internal/request/router"
	studentRouter "github.com/mentorhub/teamformation/internal/student/router"
	teamRouter "github.com/mentorhub/teamformation/internal/team/router"
	"github.com/mentorhub/teamformation/pkg/logger"
)

func main() {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	db, err := database.New()
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Errorw("error closing database", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		appLogger.Fatalw("failed to run migrations", "error", err)
	}

	gin.SetMode(cfg.GinMode)

	engine := gin.New()
	engine.Use(middleware.Recovery(appLogger))
	engine.Use(middleware.Logger(appLogger))

	healthHandler := health.New(db, appLogger)
	engine.GET("/health", healthHandler.Check)

	authed := engine.Group("/teamformation", middleware.Auth(cfg.Auth, appLogger))
	studentRouter.RegisterRoutes(authed, db, appLogger)
	teamRouter.RegisterRoutes(authed, db, appLogger)
	requestRouter.RegisterRoutes(authed, db, appLogger)

	server := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Infow("starting server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorw("forced shutdown", "error", err)
	}

	appLogger.Infow("server stopped")
}
