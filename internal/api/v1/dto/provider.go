package dto

import (
	"github.com/samber/lo"
	"whisperd/internal/app/api/provider"
)

// ProviderResponse describes the loaded model backend
type ProviderResponse struct {
	Name               string   `json:"name"`
	DisplayName        string   `json:"display_name"`
	Type               string   `json:"type"`
	Version            string   `json:"version,omitempty"`
	Model              string   `json:"model,omitempty"`
	Language           string   `json:"language"`
	MaxConcurrent      int      `json:"max_concurrent"`
	SupportedFormats   []string `json:"supported_formats"`
	MaxFileSizeMB      int      `json:"max_file_size_mb,omitempty"`
	SupportsTimestamps bool     `json:"supports_timestamps"`
	RequiresInternet   bool     `json:"requires_internet"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Provider  string `json:"provider" example:"whisper_cpp"`
	Timestamp int64  `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

// ToProviderResponse converts provider info into its API form
func ToProviderResponse(info provider.ProviderInfo, language string, maxConcurrent int) ProviderResponse {
	return ProviderResponse{
		Name:          info.Name,
		DisplayName:   info.DisplayName,
		Type:          string(info.Type),
		Version:       info.Version,
		Model:         info.DefaultModel,
		Language:      language,
		MaxConcurrent: maxConcurrent,
		SupportedFormats: lo.Map(info.SupportedFormats, func(f provider.AudioFormat, _ int) string {
			return string(f)
		}),
		MaxFileSizeMB:      info.MaxFileSizeMB,
		SupportsTimestamps: info.SupportsTimestamps,
		RequiresInternet:   info.RequiresInternet,
	}
}
