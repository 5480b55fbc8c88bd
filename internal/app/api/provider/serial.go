package provider

import (
	"context"

	"golang.org/x/sync/semaphore"
	"whisperd/internal/app/api"
)

// SerializedProvider bounds how many Transcribe calls may run against the
// wrapped provider at once. With a limit of 1 model calls never overlap.
type SerializedProvider struct {
	TranscriptionProvider
	sem   *semaphore.Weighted
	limit int
}

// NewSerializedProvider wraps p so that at most maxConcurrent transcriptions
// run at the same time. Values below 1 are treated as 1.
func NewSerializedProvider(p TranscriptionProvider, maxConcurrent int) *SerializedProvider {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &SerializedProvider{
		TranscriptionProvider: p,
		sem:                   semaphore.NewWeighted(int64(maxConcurrent)),
		limit:                 maxConcurrent,
	}
}

// Transcribe waits for a free slot, honouring ctx, then delegates.
func (s *SerializedProvider) Transcribe(ctx context.Context, inputFilePath string, language string) ([]api.Segment, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, &TranscriptionError{
			Code:      "queue_cancelled",
			Message:   "waiting for model: " + err.Error(),
			Provider:  s.GetProviderInfo().Name,
			Retryable: true,
		}
	}
	defer s.sem.Release(1)

	return s.TranscriptionProvider.Transcribe(ctx, inputFilePath, language)
}

// Limit returns the configured concurrency limit
func (s *SerializedProvider) Limit() int {
	return s.limit
}
