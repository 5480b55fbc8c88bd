package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProvidersFile is the optional YAML document named by PROVIDERS_CONFIG.
//
//	providers:
//	  whisper_cpp:
//	    settings:
//	      binary_path: /opt/whisper.cpp/main
//	      model_path: /models/ggml-base.bin
//	  openai:
//	    auth:
//	      api_key: ${OPENAI_API_KEY}
type ProvidersFile struct {
	Providers map[string]ProviderEntry `yaml:"providers"`
}

// ProviderEntry holds the raw settings handed to a provider creator.
type ProviderEntry struct {
	Auth     map[string]interface{} `yaml:"auth"`
	Settings map[string]interface{} `yaml:"settings"`
}

// LoadProvidersFile reads path, expanding ${VAR} references before parsing.
func LoadProvidersFile(path string) (*ProvidersFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read providers config: %w", err)
	}

	var pf ProvidersFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &pf); err != nil {
		return nil, fmt.Errorf("parse providers config %s: %w", path, err)
	}
	if pf.Providers == nil {
		pf.Providers = map[string]ProviderEntry{}
	}
	return &pf, nil
}

// ProviderSettings builds the creator config for the active provider. Values
// from the providers file override environment defaults.
func (c *Config) ProviderSettings() (map[string]interface{}, error) {
	name := c.Transcription.Provider
	settings := GetProviderDefaults(name, c.Transcription)
	auth := map[string]interface{}{}

	if c.Transcription.ProvidersFile != "" {
		pf, err := LoadProvidersFile(c.Transcription.ProvidersFile)
		if err != nil {
			return nil, err
		}
		if entry, ok := pf.Providers[name]; ok {
			for k, v := range entry.Settings {
				settings[k] = v
			}
			for k, v := range entry.Auth {
				auth[k] = v
			}
		}
	}

	return map[string]interface{}{
		"settings": settings,
		"auth":     auth,
	}, nil
}
