// Package router wires handlers and middleware into the HTTP surface.
package router

import (
	"github.com/fra-atlas/fra-atlas-backend/config"
	"github.com/fra-atlas/fra-atlas-backend/handlers"
	"github.com/fra-atlas/fra-atlas-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies holds everything SetupRouter needs to register routes.
type Dependencies struct {
	Config                *config.Config
	UploadHandler         *handlers.UploadHandler
	ClaimHandler          *handlers.ClaimHandler
	RecommendationHandler *handlers.RecommendationHandler
	MapHandler            *handlers.MapHandler
	HealthHandler         *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics routes
	r.GET("/health", deps.HealthHandler.HealthCheck)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Versioned API group (v1)
	v1 := r.Group("/v1")
	{
		v1.POST("/upload", deps.UploadHandler.UploadFile)

		v1.GET("/claims", deps.ClaimHandler.ListClaims)
		v1.GET("/claims/:id", deps.ClaimHandler.GetClaim)

		v1.POST("/recommend/:id", deps.RecommendationHandler.GenerateRecommendations)
		v1.GET("/recommend/:id/history", deps.RecommendationHandler.GetRecommendationHistory)

		v1.GET("/map", deps.MapHandler.GetMapData)
	}

	return r
}
