package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"whisperd/internal/app/model"
)

const targetSampleRate = 16000

// Tools holds the ffmpeg/ffprobe binaries used for normalization.
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// DefaultTools resolves ffmpeg and ffprobe from PATH.
func DefaultTools() Tools {
	return Tools{FFmpeg: "ffmpeg", FFprobe: "ffprobe"}
}

// Available reports whether both binaries can be found.
func (t Tools) Available() bool {
	if _, err := exec.LookPath(t.FFmpeg); err != nil {
		return false
	}
	_, err := exec.LookPath(t.FFprobe)
	return err == nil
}

// Is16kHzWavFile reports whether the file already is 16 kHz PCM s16le.
func (t Tools) Is16kHzWavFile(ctx context.Context, filePath string) (bool, error) {
	cmd := exec.CommandContext(ctx, t.FFprobe, "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("ffprobe %s: %w", filepath.Base(filePath), err)
	}
	return parseIs16kHzWav(output)
}

func parseIs16kHzWav(ffprobeJSON []byte) (bool, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(ffprobeJSON, &probeOutput); err != nil {
		return false, fmt.Errorf("decode ffprobe output: %w", err)
	}

	return probeOutput.IsPCM16At(targetSampleRate), nil
}

// ConvertTo16kHzWav writes a mono 16 kHz WAV next to the input and returns its path.
// The caller owns the returned file.
func (t Tools) ConvertTo16kHzWav(ctx context.Context, inputFilePath string) (string, error) {
	outputFilePath := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_16khz.wav"

	cmd := exec.CommandContext(ctx, t.FFmpeg, "-nostdin", "-y", "-i", inputFilePath,
		"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputFilePath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outputFilePath)
		return "", fmt.Errorf("FFmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return outputFilePath, nil
}

// Normalize converts the input to 16 kHz WAV when needed. The returned release
// func removes any intermediate file and is safe to call when nothing was created.
func (t Tools) Normalize(ctx context.Context, inputFilePath string) (string, func(), error) {
	noop := func() {}

	ok, err := t.Is16kHzWavFile(ctx, inputFilePath)
	if err != nil {
		return "", noop, err
	}
	if ok {
		return inputFilePath, noop, nil
	}

	converted, err := t.ConvertTo16kHzWav(ctx, inputFilePath)
	if err != nil {
		return "", noop, err
	}
	return converted, func() { os.Remove(converted) }, nil
}
