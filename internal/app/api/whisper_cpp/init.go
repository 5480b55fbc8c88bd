package whisper_cpp

import (
	"fmt"

	"whisperd/internal/app/api/provider"
)

func init() {
	// Register whisper_cpp provider with the factory
	provider.RegisterProvider(providerName, createWhisperCppProvider)
}

// createWhisperCppProvider creates a whisper.cpp provider from configuration
func createWhisperCppProvider(config map[string]interface{}) (provider.TranscriptionProvider, error) {
	settings, ok := config["settings"].(map[string]interface{})
	if !ok {
		settings = config // Use entire config as settings if not nested
	}

	binaryPath, ok := settings["binary_path"].(string)
	if !ok || binaryPath == "" {
		return nil, fmt.Errorf("whisper_cpp provider requires 'binary_path' setting")
	}

	modelPath, ok := settings["model_path"].(string)
	if !ok || modelPath == "" {
		return nil, fmt.Errorf("whisper_cpp provider requires 'model_path' setting")
	}

	providerConfig := LocalProviderConfig{
		BinaryPath:     binaryPath,
		ModelPath:      modelPath,
		NormalizeAudio: true,
	}

	if prompt, ok := settings["prompt"].(string); ok {
		providerConfig.Prompt = prompt
	}
	if tempDir, ok := settings["temp_dir"].(string); ok {
		providerConfig.TempDir = tempDir
	}
	if normalize, ok := settings["normalize_audio"].(bool); ok {
		providerConfig.NormalizeAudio = normalize
	}

	if threads, ok := settings["threads"].(float64); ok {
		providerConfig.Threads = int(threads)
	} else if threads, ok := settings["threads"].(int); ok {
		providerConfig.Threads = threads
	}

	return NewLocalTranscriber(providerConfig, provider.LoggerFrom(config)), nil
}
