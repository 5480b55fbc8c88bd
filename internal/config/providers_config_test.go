package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderSettings_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("WHISPER_CPP_BINARY", "/opt/whisper/main")
	t.Setenv("WHISPER_CPP_MODEL", "/models/ggml-base.bin")

	cfg, err := Load()
	require.NoError(t, err)

	got, err := cfg.ProviderSettings()
	require.NoError(t, err)
	settings := got["settings"].(map[string]interface{})
	assert.Equal(t, "/opt/whisper/main", settings["binary_path"])
	assert.Equal(t, "/models/ggml-base.bin", settings["model_path"])
}

func TestProviderSettings_OpenAIModelDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSCRIBE_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	got, err := cfg.ProviderSettings()
	require.NoError(t, err)
	settings := got["settings"].(map[string]interface{})
	assert.Equal(t, "sk-test", settings["api_key"])
	_, hasModel := settings["model"]
	assert.False(t, hasModel)
}

func TestProviderSettings_FileOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSCRIBE_PROVIDER", "whisper_server")
	t.Setenv("WHISPERD_TEST_TOKEN", "secret")

	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
providers:
  whisper_server:
    settings:
      base_url: http://gpu-box:9000
      timeout: 45
      custom_headers:
        Authorization: Bearer ${WHISPERD_TEST_TOKEN}
  openai:
    auth:
      api_key: unused
`), 0o644))
	t.Setenv("PROVIDERS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	got, err := cfg.ProviderSettings()
	require.NoError(t, err)
	settings := got["settings"].(map[string]interface{})
	assert.Equal(t, "http://gpu-box:9000", settings["base_url"])
	assert.Equal(t, 45, settings["timeout"])
	assert.Equal(t, "base", settings["model"])
	headers := settings["custom_headers"].(map[string]interface{})
	assert.Equal(t, "Bearer secret", headers["Authorization"])
	assert.Empty(t, got["auth"])
}

func TestLoadProvidersFile_Errors(t *testing.T) {
	_, err := LoadProvidersFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers: [not, a, map"), 0o644))
	_, err = LoadProvidersFile(path)
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte(""), 0o644))
	pf, err := LoadProvidersFile(empty)
	require.NoError(t, err)
	assert.Empty(t, pf.Providers)
}
