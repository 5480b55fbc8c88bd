package routes

import (
	"github.com/gin-gonic/gin"
	"whisperd/internal/api/v1/handlers"
	"whisperd/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	ProviderService      services.ProviderService
}

// RegisterRoutes registers the transcription and operational routes
func RegisterRoutes(router gin.IRouter, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	router.POST("/transcribe", transcriptionHandler.Transcribe)

	if container.ProviderService != nil {
		providerHandler := handlers.NewProviderHandler(container.ProviderService)
		router.GET("/health", providerHandler.Health)
		router.GET("/provider", providerHandler.Get)
	}
}
