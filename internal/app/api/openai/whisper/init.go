package whisper

import (
	"time"

	"whisperd/internal/app/api/openai"
	"whisperd/internal/app/api/provider"
)

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider(providerName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from configuration
func createOpenAIProvider(config map[string]interface{}) (provider.TranscriptionProvider, error) {
	settings, ok := config["settings"].(map[string]interface{})
	if !ok {
		settings = config
	}

	auth, ok := config["auth"].(map[string]interface{})
	if !ok {
		auth = make(map[string]interface{})
	}

	providerConfig := OpenAIProviderConfig{}
	if key, ok := auth["api_key"].(string); ok && key != "" {
		providerConfig.APIKey = key
	} else if key, ok := settings["api_key"].(string); ok {
		providerConfig.APIKey = key
	}

	if model, ok := settings["model"].(string); ok {
		providerConfig.Model = model
	}
	if prompt, ok := settings["prompt"].(string); ok {
		providerConfig.Prompt = prompt
	}
	if temperature, ok := settings["temperature"].(float64); ok {
		providerConfig.Temperature = float32(temperature)
	}
	if baseURL, ok := settings["base_url"].(string); ok {
		providerConfig.BaseURL = baseURL
	}

	var timeout time.Duration
	if secs, ok := settings["timeout"].(float64); ok {
		timeout = time.Duration(secs * float64(time.Second))
	} else if secs, ok := settings["timeout"].(int); ok {
		timeout = time.Duration(secs) * time.Second
	}

	client := openai.NewClient(openai.ClientConfig{
		APIKey:  providerConfig.APIKey,
		BaseURL: providerConfig.BaseURL,
		Timeout: timeout,
	})
	return NewRemoteTranscriber(client, providerConfig), nil
}
