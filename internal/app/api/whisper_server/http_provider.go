package whisper_server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"whisperd/internal/app/api"
	"whisperd/internal/app/api/provider"
)

const providerName = "whisper_server"

// WhisperServerProvider implements transcription via HTTP to a whisper-server instance
type WhisperServerProvider struct {
	config WhisperServerConfig
	client *http.Client
	logger *zap.Logger
}

// WhisperServerConfig represents configuration for whisper-server HTTP API
type WhisperServerConfig struct {
	BaseURL       string            `yaml:"base_url"`       // Base URL of whisper-server (e.g., "http://192.168.1.100:8080")
	InferencePath string            `yaml:"inference_path"` // Inference endpoint path (default: "/inference")
	LoadPath      string            `yaml:"load_path"`      // Model loading endpoint path (default: "/load")
	Model         string            `yaml:"model"`          // Model to load at startup; empty keeps the server's model
	Timeout       time.Duration     `yaml:"timeout"`        // Request timeout, 0 means none
	Temperature   float64           `yaml:"temperature"`    // Decoding temperature (0.0-1.0)
	CustomHeaders map[string]string `yaml:"custom_headers"` // Custom HTTP headers
}

// WhisperServerResponse represents the verbose_json response from whisper-server
type WhisperServerResponse struct {
	Text     string                 `json:"text,omitempty"`
	Task     string                 `json:"task,omitempty"`
	Language string                 `json:"language,omitempty"`
	Duration float64                `json:"duration,omitempty"`
	Segments []WhisperServerSegment `json:"segments,omitempty"`
}

// WhisperServerSegment represents a segment in verbose response
type WhisperServerSegment struct {
	ID           int     `json:"id"`
	Text         string  `json:"text"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	AvgLogprob   float64 `json:"avg_logprob,omitempty"`
	NoSpeechProb float64 `json:"no_speech_prob,omitempty"`
}

// NewWhisperServerProvider creates a new whisper-server HTTP provider
func NewWhisperServerProvider(config WhisperServerConfig, logger *zap.Logger) *WhisperServerProvider {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.LoadPath == "" {
		config.LoadPath = "/load"
	}
	if config.CustomHeaders == nil {
		config.CustomHeaders = make(map[string]string)
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WhisperServerProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger.With(zap.String("provider", providerName)),
	}
}

// NewWhisperServerProviderFromSettings creates provider from generic settings
func NewWhisperServerProviderFromSettings(settings map[string]interface{}, logger *zap.Logger) (*WhisperServerProvider, error) {
	config := WhisperServerConfig{}

	if baseURL, ok := settings["base_url"].(string); ok && baseURL != "" {
		config.BaseURL = baseURL
	} else {
		return nil, fmt.Errorf("base_url is required")
	}

	if inferencePath, ok := settings["inference_path"].(string); ok {
		config.InferencePath = inferencePath
	}
	if loadPath, ok := settings["load_path"].(string); ok {
		config.LoadPath = loadPath
	}
	if model, ok := settings["model"].(string); ok {
		config.Model = model
	}
	if timeout, ok := settings["timeout"].(float64); ok {
		config.Timeout = time.Duration(timeout * float64(time.Second))
	} else if timeout, ok := settings["timeout"].(int); ok {
		config.Timeout = time.Duration(timeout) * time.Second
	}
	if temperature, ok := settings["temperature"].(float64); ok {
		config.Temperature = temperature
	}

	if headers, ok := settings["custom_headers"].(map[string]interface{}); ok {
		config.CustomHeaders = make(map[string]string)
		for k, v := range headers {
			if str, ok := v.(string); ok {
				config.CustomHeaders[k] = str
			}
		}
	}

	return NewWhisperServerProvider(config, logger), nil
}

// Transcribe posts the file to the inference endpoint and returns its segments
func (wsp *WhisperServerProvider) Transcribe(ctx context.Context, inputFilePath string, language string) ([]api.Segment, error) {
	if _, err := os.Stat(inputFilePath); os.IsNotExist(err) {
		return nil, &provider.TranscriptionError{
			Code:     "file_not_found",
			Message:  fmt.Sprintf("input file not found: %s", inputFilePath),
			Provider: providerName,
		}
	}

	body, contentType, err := wsp.createMultipartForm(inputFilePath, language)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "form_creation_failed",
			Message:  fmt.Sprintf("failed to create multipart form: %v", err),
			Provider: providerName,
		}
	}

	url := wsp.config.BaseURL + wsp.config.InferencePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "request_creation_failed",
			Message:  fmt.Sprintf("failed to create HTTP request: %v", err),
			Provider: providerName,
		}
	}

	httpReq.Header.Set("Content-Type", contentType)
	wsp.setHeaders(httpReq)

	resp, err := wsp.client.Do(httpReq)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "request_failed",
			Message:   fmt.Sprintf("HTTP request failed: %v", err),
			Provider:  providerName,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "response_read_failed",
			Message:   fmt.Sprintf("failed to read response: %v", err),
			Provider:  providerName,
			Retryable: true,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.TranscriptionError{
			Code:      "api_error",
			Message:   fmt.Sprintf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseData))),
			Provider:  providerName,
			Retryable: resp.StatusCode >= 500,
		}
	}

	segments, err := parseResponse(responseData)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "response_parse_failed",
			Message:  fmt.Sprintf("failed to parse response: %v", err),
			Provider: providerName,
		}
	}

	wsp.logger.Debug("Inference complete", zap.Int("segments", len(segments)), zap.Int("response_size", len(responseData)))
	return segments, nil
}

// createMultipartForm creates the multipart form for the API request
func (wsp *WhisperServerProvider) createMultipartForm(inputFilePath, language string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	file, err := os.Open(inputFilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(inputFilePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %v", err)
	}
	if _, err = io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file content: %v", err)
	}

	params := map[string]string{
		"response_format": "verbose_json",
		"temperature":     fmt.Sprintf("%.2f", wsp.config.Temperature),
	}
	if language != "" {
		params["language"] = language
	}

	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %v", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType(), nil
}

// parseResponse turns a verbose_json body into segments. Servers that only
// return "text" yield a single segment.
func parseResponse(data []byte) ([]api.Segment, error) {
	var resp WhisperServerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %v", err)
	}

	if len(resp.Segments) == 0 {
		if strings.TrimSpace(resp.Text) == "" {
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

func (wsp *WhisperServerProvider) setHeaders(req *http.Request) {
	for key, value := range wsp.config.CustomHeaders {
		req.Header.Set(key, value)
	}
}

// GetProviderInfo returns metadata about the whisper-server provider
func (wsp *WhisperServerProvider) GetProviderInfo() provider.ProviderInfo {
	model := wsp.config.Model
	if model == "" {
		model = "whisper-server"
	}
	return provider.ProviderInfo{
		Name:        providerName,
		DisplayName: "Whisper Server (HTTP API)",
		Type:        provider.ProviderTypeRemote,
		Version:     "1.0.0",
		SupportedFormats: []provider.AudioFormat{
			provider.FormatWAV,
			provider.FormatMP3,
			provider.FormatM4A,
			provider.FormatFLAC,
			provider.FormatOGG,
			provider.FormatWEBM,
		},
		MaxFileSizeMB:      100,
		SupportsTimestamps: true,
		RequiresInternet:   true,
		DefaultModel:       model,
	}
}

// ValidateConfiguration validates the provider configuration
func (wsp *WhisperServerProvider) ValidateConfiguration() error {
	if wsp.config.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if !strings.HasPrefix(wsp.config.BaseURL, "http://") && !strings.HasPrefix(wsp.config.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://")
	}
	if wsp.config.Temperature < 0.0 || wsp.config.Temperature > 1.0 {
		return fmt.Errorf("temperature must be between 0.0 and 1.0")
	}
	return nil
}

// Load asks the server to load the configured model. Without a model it only
// checks that the server answers.
func (wsp *WhisperServerProvider) Load(ctx context.Context) error {
	if wsp.config.Model == "" {
		return wsp.HealthCheck(ctx)
	}
	return wsp.LoadModel(ctx, wsp.config.Model)
}

// HealthCheck performs a health check on the provider
func (wsp *WhisperServerProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wsp.config.BaseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}
	wsp.setHeaders(req)

	resp, err := wsp.client.Do(req)
	if err != nil {
		return fmt.Errorf("server connectivity test failed: %w", err)
	}
	defer resp.Body.Close()

	// 503 is returned by whisper-server while a model is loading
	if resp.StatusCode >= 500 && resp.StatusCode != http.StatusServiceUnavailable {
		return fmt.Errorf("server returned error status: %d", resp.StatusCode)
	}
	return nil
}

// LoadModel loads a model on the remote server
func (wsp *WhisperServerProvider) LoadModel(ctx context.Context, model string) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("model", model); err != nil {
		return fmt.Errorf("failed to write model field: %v", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wsp.config.BaseURL+wsp.config.LoadPath, body)
	if err != nil {
		return fmt.Errorf("failed to create load model request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	wsp.setHeaders(req)

	resp, err := wsp.client.Do(req)
	if err != nil {
		return fmt.Errorf("load model request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("load model failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	wsp.logger.Info("Remote model loaded", zap.String("model", model))
	return nil
}
