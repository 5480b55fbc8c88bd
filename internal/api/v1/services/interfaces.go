package services

import (
	"context"
	"io"

	"whisperd/internal/api/v1/dto"
)

// TranscriptionService stages an upload, runs the model and returns the joined text.
type TranscriptionService interface {
	Transcribe(ctx context.Context, upload io.Reader) (string, error)
}

// ProviderService reports on the loaded model backend.
type ProviderService interface {
	GetProvider(ctx context.Context) (*dto.ProviderResponse, error)
	Health(ctx context.Context) (*dto.HealthResponse, error)
}
