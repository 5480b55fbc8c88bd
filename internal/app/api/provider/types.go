package provider

import (
	"path/filepath"
	"strings"
)

// AudioFormat defines supported audio formats
type AudioFormat string

const (
	FormatWAV  AudioFormat = "wav"
	FormatMP3  AudioFormat = "mp3"
	FormatM4A  AudioFormat = "m4a"
	FormatFLAC AudioFormat = "flac"
	FormatOGG  AudioFormat = "ogg"
	FormatWEBM AudioFormat = "webm"
)

// ProviderType defines the type of transcription provider
type ProviderType string

const (
	ProviderTypeLocal  ProviderType = "local"
	ProviderTypeRemote ProviderType = "remote"
)

// ProviderInfo contains metadata about a transcription provider
type ProviderInfo struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Type        ProviderType `json:"type"`
	Version     string       `json:"version,omitempty"`

	SupportedFormats []AudioFormat `json:"supported_formats"`
	MaxFileSizeMB    int           `json:"max_file_size_mb,omitempty"` // 0 means no limit

	SupportsTimestamps bool `json:"supports_timestamps"`
	RequiresInternet   bool `json:"requires_internet"`
	RequiresAPIKey     bool `json:"requires_api_key"`
	RequiresBinary     bool `json:"requires_binary"`

	DefaultModel string `json:"default_model,omitempty"`
}

// TranscriptionError represents provider-specific errors
type TranscriptionError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Retryable bool   `json:"retryable"`
}

func (e *TranscriptionError) Error() string {
	return e.Message
}

// ErrorCode returns the provider error code, or "unknown" for foreign errors
func ErrorCode(err error) string {
	if te, ok := err.(*TranscriptionError); ok && te.Code != "" {
		return te.Code
	}
	return "unknown"
}

// IsValidAudioFormat checks if the given format is supported
func IsValidAudioFormat(format string) bool {
	switch AudioFormat(format) {
	case FormatWAV, FormatMP3, FormatM4A, FormatFLAC, FormatOGG, FormatWEBM:
		return true
	default:
		return false
	}
}

// GetAudioFormatFromFilename extracts audio format from filename
func GetAudioFormatFromFilename(filename string) AudioFormat {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if IsValidAudioFormat(ext) {
		return AudioFormat(ext)
	}
	return ""
}
