package whisper_server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"whisperd/internal/app/api"
	"whisperd/internal/app/api/provider"
)

// Mock HTTP server for testing
func createMockWhisperServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	return server
}

func inferenceHandler(t *testing.T, response interface{}) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/inference":
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			if err := r.ParseMultipartForm(10 << 20); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			file, _, err := r.FormFile("file")
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("No file uploaded"))
				return
			}
			file.Close()

			if got := r.FormValue("response_format"); got != "verbose_json" {
				t.Errorf("response_format = %s, want verbose_json", got)
			}
			if got := r.FormValue("language"); got != "en" {
				t.Errorf("language = %s, want en", got)
			}
			if got := r.Header.Get("X-Test"); got != "yes" {
				t.Errorf("custom header missing")
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(response)
		case "/load":
			r.ParseMultipartForm(1 << 20)
			if r.FormValue("model") != "base" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("unknown model"))
				return
			}
			w.WriteHeader(http.StatusOK)
		case "/":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func createTestAudioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hello.wav")
	if err := os.WriteFile(path, []byte("RIFF fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestProvider(baseURL string) *WhisperServerProvider {
	return NewWhisperServerProvider(WhisperServerConfig{
		BaseURL:       baseURL,
		Model:         "base",
		Timeout:       5 * time.Second,
		CustomHeaders: map[string]string{"X-Test": "yes"},
	}, nil)
}

func TestWhisperServerProvider_Transcribe(t *testing.T) {
	server := createMockWhisperServer(t, inferenceHandler(t, WhisperServerResponse{
		Text:     " hello world",
		Language: "en",
		Duration: 2.0,
		Segments: []WhisperServerSegment{
			{ID: 0, Text: " hello", Start: 0, End: 1},
			{ID: 1, Text: " world", Start: 1, End: 2},
		},
	}))

	wsp := newTestProvider(server.URL)
	segments, err := wsp.Transcribe(context.Background(), createTestAudioFile(t), "en")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if got := api.JoinSegments(segments); got != "hello  world" {
		t.Errorf("JoinSegments() = %q", got)
	}
}

func TestWhisperServerProvider_TextOnlyResponse(t *testing.T) {
	server := createMockWhisperServer(t, inferenceHandler(t, map[string]string{"text": " just text "}))

	segments, err := newTestProvider(server.URL).Transcribe(context.Background(), createTestAudioFile(t), "en")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if len(segments) != 1 || segments[0].Text != " just text " {
		t.Errorf("unexpected segments: %+v", segments)
	}
}

func TestWhisperServerProvider_EmptyResponse(t *testing.T) {
	server := createMockWhisperServer(t, inferenceHandler(t, map[string]string{"text": ""}))

	segments, err := newTestProvider(server.URL).Transcribe(context.Background(), createTestAudioFile(t), "en")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("expected no segments, got %+v", segments)
	}
}

func TestWhisperServerProvider_ServerError(t *testing.T) {
	server := createMockWhisperServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("model crashed"))
	})

	_, err := newTestProvider(server.URL).Transcribe(context.Background(), createTestAudioFile(t), "en")
	if err == nil {
		t.Fatal("expected error")
	}
	te, ok := err.(*provider.TranscriptionError)
	if !ok {
		t.Fatalf("expected TranscriptionError, got %T", err)
	}
	if te.Code != "api_error" || !te.Retryable || !strings.Contains(te.Message, "model crashed") {
		t.Errorf("unexpected error: %+v", te)
	}
}

func TestWhisperServerProvider_InvalidJSON(t *testing.T) {
	server := createMockWhisperServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>nope</html>"))
	})

	_, err := newTestProvider(server.URL).Transcribe(context.Background(), createTestAudioFile(t), "en")
	if provider.ErrorCode(err) != "response_parse_failed" {
		t.Errorf("expected response_parse_failed, got %v", err)
	}
}

func TestWhisperServerProvider_FileNotFound(t *testing.T) {
	_, err := newTestProvider("http://127.0.0.1:1").Transcribe(context.Background(), "/no/such/file.wav", "en")
	if provider.ErrorCode(err) != "file_not_found" {
		t.Errorf("expected file_not_found, got %v", err)
	}
}

func TestWhisperServerProvider_Load(t *testing.T) {
	server := createMockWhisperServer(t, inferenceHandler(t, nil))

	if err := newTestProvider(server.URL).Load(context.Background()); err != nil {
		t.Errorf("Load() error = %v", err)
	}

	bad := NewWhisperServerProvider(WhisperServerConfig{BaseURL: server.URL, Model: "huge"}, nil)
	if err := bad.Load(context.Background()); err == nil || !strings.Contains(err.Error(), "unknown model") {
		t.Errorf("Load() error = %v, want unknown model", err)
	}

	noModel := NewWhisperServerProvider(WhisperServerConfig{BaseURL: server.URL}, nil)
	if err := noModel.Load(context.Background()); err != nil {
		t.Errorf("Load() without model error = %v", err)
	}
}

func TestWhisperServerProvider_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		config  WhisperServerConfig
		wantErr bool
	}{
		{name: "valid", config: WhisperServerConfig{BaseURL: "http://localhost:8080"}},
		{name: "missing url", config: WhisperServerConfig{}, wantErr: true},
		{name: "bad scheme", config: WhisperServerConfig{BaseURL: "ftp://x"}, wantErr: true},
		{name: "bad temperature", config: WhisperServerConfig{BaseURL: "http://x", Temperature: 1.5}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewWhisperServerProvider(tt.config, nil).ValidateConfiguration()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfiguration() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewWhisperServerProviderFromSettings(t *testing.T) {
	if _, err := NewWhisperServerProviderFromSettings(map[string]interface{}{}, nil); err == nil {
		t.Error("expected error without base_url")
	}

	p, err := createWhisperServerProvider(map[string]interface{}{
		"settings": map[string]interface{}{
			"base_url":       "http://localhost:8080/",
			"model":          "base",
			"timeout":        float64(30),
			"custom_headers": map[string]interface{}{"Authorization": "Bearer x"},
		},
	})
	if err != nil {
		t.Fatalf("createWhisperServerProvider() error = %v", err)
	}
	wsp := p.(*WhisperServerProvider)
	if wsp.config.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %s", wsp.config.BaseURL)
	}
	if wsp.config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", wsp.config.Timeout)
	}
	if wsp.config.CustomHeaders["Authorization"] != "Bearer x" {
		t.Errorf("headers not applied")
	}
	if p.GetProviderInfo().DefaultModel != "base" {
		t.Errorf("DefaultModel = %s", p.GetProviderInfo().DefaultModel)
	}
}
