package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"whisperd/internal/api/middleware"
	"whisperd/internal/api/v1/services"
)

// ProviderHandler handles provider-related API endpoints
type ProviderHandler struct {
	service services.ProviderService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(service services.ProviderService) *ProviderHandler {
	return &ProviderHandler{
		service: service,
	}
}

// Get handles GET /provider
//
// @Summary Describe the loaded model
// @Description Returns the active provider, model, fixed language and concurrency limit
// @Tags operations
// @Produce json
// @Success 200 {object} dto.ProviderResponse "Provider details"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /provider [get]
func (h *ProviderHandler) Get(c *gin.Context) {
	resp, err := h.service.GetProvider(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health
//
// @Summary Health check
// @Description Runs the provider health check
// @Tags operations
// @Produce json
// @Success 200 {object} dto.HealthResponse "Provider reachable"
// @Failure 503 {object} dto.HealthResponse "Provider health check failed"
// @Router /health [get]
func (h *ProviderHandler) Health(c *gin.Context) {
	resp, err := h.service.Health(c.Request.Context())
	if err != nil {
		if resp == nil {
			middleware.HandleError(c, err)
			return
		}
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
