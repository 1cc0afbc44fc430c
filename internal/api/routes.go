package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mdnsexplorer/mdnsexplorer/internal/api/handlers"
	"github.com/mdnsexplorer/mdnsexplorer/internal/api/middleware"
	"github.com/mdnsexplorer/mdnsexplorer/internal/config"

	_ "github.com/mdnsexplorer/mdnsexplorer/internal/api/docs" // swagger docs
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := r.Group("/api/v1")

	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		apiGroup.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	apiGroup.GET("/health", h.Health)
	apiGroup.GET("/stats", h.Stats)

	apiGroup.GET("/messages", h.ListMessages)
	apiGroup.GET("/messages/:id", h.GetMessage)
}
