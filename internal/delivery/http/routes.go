package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/macrolens/capture/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	if cfg.Files.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = cfg.Files.MaxUploadBytes
	}

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		nutrition := v1.Group("/nutrition")
		{
			nutrition.POST("/analyze", handler.AnalyzeNutrition)
			nutrition.POST("/quick-check", handler.QuickCheckNutrition)
			nutrition.POST("/parse", handler.ParseNutrition)
		}

		workout := v1.Group("/workout")
		{
			workout.POST("/analyze", handler.AnalyzeWorkout)
			workout.POST("/quick-check", handler.QuickCheckWorkout)
			workout.POST("/parse", handler.ParseWorkout)
			workout.POST("/files", handler.ExtractWorkoutFile)
			workout.POST("/vision", handler.DecodeWorkoutVision)
		}
	}

	return router
}
