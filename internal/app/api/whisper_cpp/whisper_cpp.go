package whisper_cpp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"whisperd/internal/app/api"
	"whisperd/internal/app/api/provider"
	"whisperd/internal/app/audio"
)

const providerName = "whisper_cpp"

// LocalProviderConfig represents configuration specific to local whisper.cpp provider
type LocalProviderConfig struct {
	BinaryPath     string `yaml:"binary_path"`
	ModelPath      string `yaml:"model_path"`
	Prompt         string `yaml:"prompt"`
	Threads        int    `yaml:"threads"`
	TempDir        string `yaml:"temp_dir"`
	NormalizeAudio bool   `yaml:"normalize_audio"`
}

// LocalTranscriber implements local transcription, using the whisper.cpp CLI.
type LocalTranscriber struct {
	config LocalProviderConfig
	tools  audio.Tools
	logger *zap.Logger
}

// whisperOutput is the subset of whisper.cpp's -oj output we consume.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"` // milliseconds
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(config LocalProviderConfig, logger *zap.Logger) *LocalTranscriber {
	if config.TempDir == "" {
		config.TempDir = filepath.Join(os.TempDir(), "whisperd")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalTranscriber{
		config: config,
		tools:  audio.DefaultTools(),
		logger: logger.With(zap.String("provider", providerName)),
	}
}

// Transcribe runs the whisper.cpp binary against inputFilePath and returns its segments.
func (lt *LocalTranscriber) Transcribe(ctx context.Context, inputFilePath string, language string) ([]api.Segment, error) {
	if _, err := os.Stat(inputFilePath); err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "file_not_found",
			Message:  fmt.Sprintf("input file not found: %s", inputFilePath),
			Provider: providerName,
		}
	}

	if lt.config.NormalizeAudio {
		normalized, release, err := lt.tools.Normalize(ctx, inputFilePath)
		if err != nil {
			return nil, &provider.TranscriptionError{
				Code:      "audio_conversion_error",
				Message:   fmt.Sprintf("error converting input file: %v", err),
				Provider:  providerName,
				Retryable: true,
			}
		}
		defer release()
		inputFilePath = normalized
	}

	if err := os.MkdirAll(lt.config.TempDir, 0o755); err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "temp_dir_error",
			Message:   fmt.Sprintf("failed to create temp directory: %v", err),
			Provider:  providerName,
			Retryable: true,
		}
	}

	outputBase := lt.newOutputBase()
	outputFile := outputBase + ".json"
	defer os.Remove(outputFile)

	args := lt.buildArgs(inputFilePath, language, outputBase)

	command := exec.CommandContext(ctx, lt.config.BinaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	lt.logger.Debug("Running transcription command",
		zap.String("command", lt.config.BinaryPath+" "+strings.Join(args, " ")))

	if err := command.Run(); err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "command_failed",
			Message:   fmt.Sprintf("command execution error: %v, stderr: %s", err, strings.TrimSpace(stderr.String())),
			Provider:  providerName,
			Retryable: true,
		}
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "output_missing",
			Message:  fmt.Sprintf("failed to read output file: %v", err),
			Provider: providerName,
		}
	}

	segments, err := parseOutput(data)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "output_parse_failed",
			Message:  err.Error(),
			Provider: providerName,
		}
	}
	return segments, nil
}

// newOutputBase returns a per-call path prefix for the -oj output file.
func (lt *LocalTranscriber) newOutputBase() string {
	return filepath.Join(lt.config.TempDir, "transcription_"+uuid.NewString())
}

func (lt *LocalTranscriber) buildArgs(inputFilePath, language, outputBase string) []string {
	args := []string{
		"-m", lt.config.ModelPath,
		"-l", language,
		"-oj",
		"-np",
		"-f", inputFilePath,
		"-of", outputBase,
	}
	if lt.config.Prompt != "" {
		args = append(args, "--prompt", lt.config.Prompt)
	}
	if lt.config.Threads > 0 {
		args = append(args, "-t", fmt.Sprint(lt.config.Threads))
	}
	return args
}

func parseOutput(data []byte) ([]api.Segment, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse whisper.cpp output: %w", err)
	}

	segments := make([]api.Segment, 0, len(out.Transcription))
	for i, t := range out.Transcription {
		segments = append(segments, api.Segment{
			ID:    i,
			Text:  t.Text,
			Start: float64(t.Offsets.From) / 1000,
			End:   float64(t.Offsets.To) / 1000,
		})
	}
	return segments, nil
}

// GetProviderInfo returns metadata about the whisper.cpp provider
func (lt *LocalTranscriber) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:        providerName,
		DisplayName: "Whisper.cpp (Local)",
		Type:        provider.ProviderTypeLocal,
		Version:     "1.0.0",
		SupportedFormats: []provider.AudioFormat{
			provider.FormatWAV,
			provider.FormatMP3,
			provider.FormatM4A,
			provider.FormatFLAC,
		},
		SupportsTimestamps: true,
		RequiresBinary:     true,
		DefaultModel:       filepath.Base(lt.config.ModelPath),
	}
}

// ValidateConfiguration validates the provider configuration
func (lt *LocalTranscriber) ValidateConfiguration() error {
	if lt.config.BinaryPath == "" {
		return fmt.Errorf("binary_path is required for whisper_cpp provider")
	}
	if lt.config.ModelPath == "" {
		return fmt.Errorf("model_path is required for whisper_cpp provider")
	}
	if _, err := os.Stat(lt.config.BinaryPath); os.IsNotExist(err) {
		return fmt.Errorf("whisper.cpp binary not found at %s", lt.config.BinaryPath)
	}
	if _, err := os.Stat(lt.config.ModelPath); os.IsNotExist(err) {
		return fmt.Errorf("whisper model not found at %s", lt.config.ModelPath)
	}
	if err := os.MkdirAll(lt.config.TempDir, 0o755); err != nil {
		return fmt.Errorf("cannot create temp directory %s: %v", lt.config.TempDir, err)
	}
	if lt.config.NormalizeAudio && !lt.tools.Available() {
		return fmt.Errorf("normalize_audio requires ffmpeg and ffprobe on PATH")
	}
	return nil
}

// Load checks that the model file is readable. whisper.cpp maps the model per
// invocation, so there is nothing to keep resident.
func (lt *LocalTranscriber) Load(ctx context.Context) error {
	f, err := os.Open(lt.config.ModelPath)
	if err != nil {
		return fmt.Errorf("open model: %w", err)
	}
	return f.Close()
}

// HealthCheck performs a health check on the provider
func (lt *LocalTranscriber) HealthCheck(ctx context.Context) error {
	if _, err := os.Stat(lt.config.BinaryPath); err != nil {
		return fmt.Errorf("binary unavailable: %w", err)
	}
	if _, err := os.Stat(lt.config.ModelPath); err != nil {
		return fmt.Errorf("model unavailable: %w", err)
	}
	return nil
}
