package whisper_server

import (
	"whisperd/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(providerName, createWhisperServerProvider)
}

func createWhisperServerProvider(config map[string]interface{}) (provider.TranscriptionProvider, error) {
	settings, ok := config["settings"].(map[string]interface{})
	if !ok {
		settings = config
	}
	return NewWhisperServerProviderFromSettings(settings, provider.LoggerFrom(config))
}
