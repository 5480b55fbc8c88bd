package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full process configuration.
type Config struct {
	Environment   string `validate:"oneof=development production test"`
	LogLevel      string `validate:"oneof=debug info warn warning error"`
	Server        ServerConfig
	Transcription TranscriptionConfig
	Staging       StagingConfig
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host             string        `validate:"required"`
	Port             int           `validate:"min=1,max=65535"`
	ReadTimeout      time.Duration `validate:"min=0"`
	WriteTimeout     time.Duration `validate:"min=0"`
	IdleTimeout      time.Duration `validate:"min=0"`
	ShutdownTimeout  time.Duration `validate:"min=0"`
	MaxUploadMB      int64         `validate:"min=1"`
	CORSAllowOrigins []string      `validate:"min=1,dive,required"`
}

// TranscriptionConfig holds model settings
type TranscriptionConfig struct {
	Provider         string        `validate:"required"`
	Language         string        `validate:"required"`
	Model            string
	MaxConcurrent    int           `validate:"min=1,max=100"`
	Timeout          time.Duration `validate:"min=0"`
	WhisperCppBinary string
	WhisperCppModel  string
	WhisperServerURL string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	ProvidersFile    string
}

// StagingConfig holds upload staging and cleanup settings
type StagingConfig struct {
	Dir                  string
	Suffix               string        `validate:"required,startswith=."`
	CleanupRetryInterval time.Duration `validate:"gt=0"`
	CleanupMaxAttempts   int           `validate:"min=1,max=100"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsDevelopment reports whether the development logger and gin debug mode apply.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadEnv loads environment variables from .env file if it exists.
// It returns the path that was loaded, or "" when none was found.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	p := &envParser{}

	cfg := &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", DefaultEnvironment),
		LogLevel:    strings.ToLower(getEnvOrDefault("LOG_LEVEL", DefaultLogLevel)),
		Server: ServerConfig{
			Host:             getEnvOrDefault("HOST", DefaultHost),
			Port:             p.int("PORT", DefaultPort),
			ReadTimeout:      p.duration("READ_TIMEOUT", DefaultReadTimeout),
			WriteTimeout:     p.duration("WRITE_TIMEOUT", 0),
			IdleTimeout:      p.duration("IDLE_TIMEOUT", DefaultIdleTimeout),
			ShutdownTimeout:  p.duration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
			MaxUploadMB:      int64(p.int("MAX_UPLOAD_MB", DefaultMaxUploadMB)),
			CORSAllowOrigins: splitList(getEnvOrDefault("CORS_ALLOW_ORIGINS", "*")),
		},
		Transcription: TranscriptionConfig{
			Provider:         getEnvOrDefault("TRANSCRIBE_PROVIDER", DefaultProvider),
			Language:         getEnvOrDefault("TRANSCRIBE_LANGUAGE", DefaultLanguage),
			Model:            getEnvOrDefault("TRANSCRIBE_MODEL", DefaultModel),
			MaxConcurrent:    p.int("MAX_CONCURRENT_TRANSCRIPTIONS", DefaultMaxConcurrent),
			Timeout:          p.duration("TRANSCRIBE_TIMEOUT", 0),
			WhisperCppBinary: os.Getenv("WHISPER_CPP_BINARY"),
			WhisperCppModel:  os.Getenv("WHISPER_CPP_MODEL"),
			WhisperServerURL: getEnvOrDefault("WHISPER_SERVER_URL", DefaultWhisperServerURL),
			OpenAIAPIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
			ProvidersFile:    os.Getenv("PROVIDERS_CONFIG"),
		},
		Staging: StagingConfig{
			Dir:                  os.Getenv("STAGING_DIR"),
			Suffix:               getEnvOrDefault("STAGING_SUFFIX", DefaultStagingSuffix),
			CleanupRetryInterval: p.duration("CLEANUP_RETRY_INTERVAL", DefaultCleanupRetryInterval),
			CleanupMaxAttempts:   p.int("CLEANUP_MAX_ATTEMPTS", DefaultCleanupMaxAttempts),
		},
	}

	if p.err != nil {
		return nil, p.err
	}
	return cfg, nil
}

// envParser records the first parse failure so Load can report it once.
type envParser struct {
	err error
}

func (p *envParser) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

// duration accepts Go durations ("90s") or a bare number of seconds.
func (p *envParser) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return d
}

func (p *envParser) fail(key, raw string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
