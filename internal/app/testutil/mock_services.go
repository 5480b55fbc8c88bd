package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"
	"whisperd/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	TranscriptionService *MockTranscriptionService
	ProviderService      *MockProviderService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		TranscriptionService: NewMockTranscriptionService(t),
		ProviderService:      NewMockProviderService(t),
	}
}

// MockTranscriptionService is a mock implementation of TranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

func NewMockTranscriptionService(t *testing.T) *MockTranscriptionService {
	m := &MockTranscriptionService{}
	m.Test(t)
	return m
}

// Transcribe reads upload fully; expectations match on its contents as a string.
func (m *MockTranscriptionService) Transcribe(ctx context.Context, upload io.Reader) (string, error) {
	data, err := io.ReadAll(upload)
	if err != nil {
		return "", err
	}
	args := m.Called(ctx, string(data))
	return args.String(0), args.Error(1)
}

// MockProviderService is a mock implementation of ProviderService
type MockProviderService struct {
	mock.Mock
}

func NewMockProviderService(t *testing.T) *MockProviderService {
	m := &MockProviderService{}
	m.Test(t)
	return m
}

func (m *MockProviderService) GetProvider(ctx context.Context) (*dto.ProviderResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProviderResponse), args.Error(1)
}

func (m *MockProviderService) Health(ctx context.Context) (*dto.HealthResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HealthResponse), args.Error(1)
}
