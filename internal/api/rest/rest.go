package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	router.GET("/", handler.Index)
	router.GET("/health", handler.HealthCheck)
	registerPortfolioRoutes(&router.RouterGroup, handler)

	// API v1 routes
	v1 := router.Group("/api/v1")
	registerPortfolioRoutes(v1, handler)
}

func registerPortfolioRoutes(group *gin.RouterGroup, handler Handler) {
	group.GET("/ingest", handler.Ingest)
	group.GET("/portfolio", handler.GetPortfolio)
	group.GET("/stats", handler.GetStats)
}
