package testutil

import (
	"context"
	"os"
	"sync"

	"github.com/stretchr/testify/mock"
	"whisperd/internal/app/api"
	"whisperd/internal/app/api/provider"
)

// MockTranscriber is a testify mock of provider.TranscriptionProvider. It also
// records each staged path and whether the file existed when the model saw it.
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	Info  provider.ProviderInfo
	Calls []TranscriptionCall
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	InputFilePath string
	Language      string
	FileExisted   bool
	Content       []byte
}

// NewMockTranscriber creates a MockTranscriber reporting itself as "mock".
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		Info: provider.ProviderInfo{
			Name:         "mock",
			DisplayName:  "Mock Transcriber",
			Type:         provider.ProviderTypeLocal,
			DefaultModel: "base",
			SupportedFormats: []provider.AudioFormat{
				provider.FormatWAV,
			},
		},
	}
}

// Transcribe implements api.Transcriber
func (m *MockTranscriber) Transcribe(ctx context.Context, inputFilePath string, language string) ([]api.Segment, error) {
	content, err := os.ReadFile(inputFilePath)
	m.mu.Lock()
	m.Calls = append(m.Calls, TranscriptionCall{
		InputFilePath: inputFilePath,
		Language:      language,
		FileExisted:   err == nil,
		Content:       content,
	})
	m.mu.Unlock()

	args := m.Called(ctx, inputFilePath, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Segment), args.Error(1)
}

// GetProviderInfo implements provider.TranscriptionProvider
func (m *MockTranscriber) GetProviderInfo() provider.ProviderInfo {
	return m.Info
}

// ValidateConfiguration implements provider.TranscriptionProvider
func (m *MockTranscriber) ValidateConfiguration() error {
	return nil
}

// HealthCheck implements provider.TranscriptionProvider
func (m *MockTranscriber) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// LastCall returns the most recent call, or the zero value.
func (m *MockTranscriber) LastCall() TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return TranscriptionCall{}
	}
	return m.Calls[len(m.Calls)-1]
}

// Segments builds segments from plain texts in order.
func Segments(texts ...string) []api.Segment {
	segments := make([]api.Segment, len(texts))
	for i, t := range texts {
		segments[i] = api.Segment{ID: i, Text: t}
	}
	return segments
}
