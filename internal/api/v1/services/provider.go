package services

import (
	"context"
	"time"

	"whisperd/internal/api/errors"
	"whisperd/internal/api/v1/dto"
	"whisperd/internal/app/api/provider"
)

const healthCheckTimeout = 5 * time.Second

// ProviderServiceImpl implements ProviderService
type ProviderServiceImpl struct {
	model         provider.TranscriptionProvider
	language      string
	maxConcurrent int
}

// NewProviderService creates a new provider service
func NewProviderService(model provider.TranscriptionProvider, language string, maxConcurrent int) *ProviderServiceImpl {
	return &ProviderServiceImpl{
		model:         model,
		language:      language,
		maxConcurrent: maxConcurrent,
	}
}

// GetProvider describes the loaded provider
func (s *ProviderServiceImpl) GetProvider(ctx context.Context) (*dto.ProviderResponse, error) {
	resp := dto.ToProviderResponse(s.model.GetProviderInfo(), s.language, s.maxConcurrent)
	return &resp, nil
}

// Health runs the provider health check. The response is always populated;
// the error is a 503 APIError when the check fails.
func (s *ProviderServiceImpl) Health(ctx context.Context) (*dto.HealthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	resp := &dto.HealthResponse{
		Status:    "healthy",
		Provider:  s.model.GetProviderInfo().Name,
		Timestamp: time.Now().Unix(),
	}
	if err := s.model.HealthCheck(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		return resp, errors.NewServiceUnavailableError(err.Error())
	}
	return resp, nil
}
