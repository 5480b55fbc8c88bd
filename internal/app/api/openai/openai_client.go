package openai

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ClientConfig holds what is needed to reach an OpenAI-compatible endpoint
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewClient builds a go-openai client. BaseURL may point at any
// OpenAI-compatible server (faster-whisper-server, LocalAI, speaches).
func NewClient(cfg ClientConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return openai.NewClientWithConfig(clientConfig)
}
