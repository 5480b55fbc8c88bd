package whisper

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
	"whisperd/internal/app/api"
	"whisperd/internal/app/api/provider"
)

const providerName = "openai"

// OpenAIProviderConfig represents configuration specific to OpenAI Whisper provider
type OpenAIProviderConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	Prompt      string  `yaml:"prompt"`
	BaseURL     string  `yaml:"base_url"`
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	config OpenAIProviderConfig
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, config OpenAIProviderConfig) *RemoteTranscriber {
	if config.Model == "" {
		config.Model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, config: config}
}

// Transcribe uploads the file and returns the verbose_json segments.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, inputFilePath string, language string) ([]api.Segment, error) {
	if _, err := os.Stat(inputFilePath); os.IsNotExist(err) {
		return nil, &provider.TranscriptionError{
			Code:     "file_not_found",
			Message:  fmt.Sprintf("input file not found: %s", inputFilePath),
			Provider: providerName,
		}
	}

	req := openai.AudioRequest{
		Model:       rt.config.Model,
		FilePath:    inputFilePath,
		Language:    language,
		Prompt:      rt.config.Prompt,
		Temperature: rt.config.Temperature,
		Format:      openai.AudioResponseFormatVerboseJSON,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "api_error",
			Message:   fmt.Sprintf("createTranscription failed: %s", err),
			Provider:  providerName,
			Retryable: true,
		}
	}

	if len(resp.Segments) == 0 {
		if resp.Text == "" {
			return []api.Segment{}, nil
		}
		return []api.Segment{{Text: resp.Text, End: resp.Duration}}, nil
	}

	segments := make([]api.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, api.Segment{ID: s.ID, Text: s.Text, Start: s.Start, End: s.End})
	}
	return segments, nil
}

// GetProviderInfo returns metadata about the OpenAI provider
func (rt *RemoteTranscriber) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:        providerName,
		DisplayName: "OpenAI Whisper API",
		Type:        provider.ProviderTypeRemote,
		Version:     "1.0.0",
		SupportedFormats: []provider.AudioFormat{
			provider.FormatMP3,
			provider.FormatM4A,
			provider.FormatWAV,
			provider.FormatWEBM,
		},
		MaxFileSizeMB:      25,
		SupportsTimestamps: true,
		RequiresInternet:   true,
		RequiresAPIKey:     true,
		DefaultModel:       rt.config.Model,
	}
}

// ValidateConfiguration validates the provider configuration
func (rt *RemoteTranscriber) ValidateConfiguration() error {
	// OpenAI-compatible self-hosted servers often run without a key
	if rt.config.APIKey == "" && rt.config.BaseURL == "" {
		return fmt.Errorf("api_key is required when base_url is not set")
	}
	if rt.config.Temperature < 0 || rt.config.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0.0 and 1.0")
	}
	return nil
}

// HealthCheck lists models as a cheap authenticated round trip
func (rt *RemoteTranscriber) HealthCheck(ctx context.Context) error {
	if _, err := rt.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai health check failed: %w", err)
	}
	return nil
}
