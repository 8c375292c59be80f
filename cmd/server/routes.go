package main

import (
	"github.com/gin-gonic/gin"

	"github.com/talenthub/internlens/internal/middleware"
	"github.com/talenthub/internlens/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the report routes; LLM calls are expensive
	reportLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api", reportLimiter.Middleware())
	{
		api.GET("/interns/:id/weekly-report", svc.reportHandler.GetWeeklyReport)
		api.POST("/reports/project", svc.reportHandler.GenerateProjectReport)
		api.POST("/reports/digest", svc.reportHandler.TriggerDigest)
	}
}
