package provider

import (
	"context"

	"whisperd/internal/app/api"
)

// TranscriptionProvider is the model handle the HTTP layer talks to.
// Implementations must be safe to share process-wide once constructed.
type TranscriptionProvider interface {
	// Core transcription functionality
	api.Transcriber

	// Provider metadata and capabilities
	GetProviderInfo() ProviderInfo

	// Configuration validation, run once before the provider is used
	ValidateConfiguration() error

	// Health check to verify provider is available and functioning
	HealthCheck(ctx context.Context) error
}

// Loader is implemented by providers that need to bring a model into memory
// before serving. Load is called exactly once at startup and blocks until done.
type Loader interface {
	Load(ctx context.Context) error
}

// ProviderMetrics records per-provider outcomes
type ProviderMetrics interface {
	// Record a successful transcription
	RecordSuccess(provider string, latencySec float64, segments int)

	// Record a failed transcription
	RecordFailure(provider string, errorType string)
}
