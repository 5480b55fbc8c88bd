package config

import "time"

// Default configuration constants
const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 5000
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	DefaultProvider         = "whisper_cpp"
	DefaultLanguage         = "en"
	DefaultModel            = "base"
	DefaultWhisperServerURL = "http://127.0.0.1:8080"

	DefaultStagingSuffix = ".wav"
	DefaultMaxUploadMB   = 32
	DefaultMaxConcurrent = 1

	DefaultCleanupRetryInterval = time.Minute
	DefaultCleanupMaxAttempts   = 5

	DefaultReadTimeout     = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultWhisperServerTimeout = 300 * time.Second
	DefaultOpenAITimeout        = 60 * time.Second
)

// GetProviderDefaults returns the env-derived settings map for a provider type.
// Keys match what each provider's creator reads.
func GetProviderDefaults(providerType string, t TranscriptionConfig) map[string]interface{} {
	switch providerType {
	case "whisper_cpp":
		return map[string]interface{}{
			"binary_path": t.WhisperCppBinary,
			"model_path":  t.WhisperCppModel,
		}
	case "whisper_server":
		return map[string]interface{}{
			"base_url": t.WhisperServerURL,
			"model":    t.Model,
			"timeout":  DefaultWhisperServerTimeout.Seconds(),
		}
	case "openai":
		settings := map[string]interface{}{
			"api_key": t.OpenAIAPIKey,
			"timeout": DefaultOpenAITimeout.Seconds(),
		}
		// "base" is a whisper.cpp model name, the hosted API only knows whisper-1
		if t.Model != "" && t.Model != DefaultModel {
			settings["model"] = t.Model
		}
		if t.OpenAIBaseURL != "" {
			settings["base_url"] = t.OpenAIBaseURL
		}
		return settings
	default:
		return map[string]interface{}{}
	}
}
