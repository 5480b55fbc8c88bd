package services

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"whisperd/internal/app/api"
	"whisperd/internal/app/api/provider"
	apperrors "whisperd/internal/app/errors"
	"whisperd/internal/app/logging"
	"whisperd/internal/app/util/files"
)

const noSpeechPlaceholder = "(no speech detected)"

// TranscriptionOptions are fixed for the life of the process.
type TranscriptionOptions struct {
	Language string
	// Timeout bounds the model call. Zero means no bound.
	Timeout time.Duration
}

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	model   provider.TranscriptionProvider
	stager  *files.Stager
	opts    TranscriptionOptions
	metrics provider.ProviderMetrics
	logger  *zap.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(
	model provider.TranscriptionProvider,
	stager *files.Stager,
	opts TranscriptionOptions,
	metrics provider.ProviderMetrics,
	logger *zap.Logger,
) *TranscriptionServiceImpl {
	if metrics == nil {
		metrics = provider.NoopProviderMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionServiceImpl{
		model:   model,
		stager:  stager,
		opts:    opts,
		metrics: metrics,
		logger:  logger,
	}
}

// Transcribe stages upload, runs the model with the configured language and
// removes the staged file before returning.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, upload io.Reader) (string, error) {
	if upload == nil {
		return "", apperrors.ErrMissingFile
	}

	requestID := logging.RequestIDFrom(ctx)
	staged, err := s.stager.Stage(upload)
	if err != nil {
		s.logger.Error("Failed to stage upload",
			zap.String("request_id", requestID),
			zap.Error(err))
		return "", apperrors.WithKind(err, apperrors.KindStaging)
	}
	defer staged.Remove()

	s.logger.Info("Received audio",
		zap.String("request_id", requestID),
		zap.String("file", filepath.Base(staged.Path)),
		zap.Int64("size_bytes", staged.Size))

	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	name := s.model.GetProviderInfo().Name
	start := time.Now()
	segments, err := s.model.Transcribe(callCtx, staged.Path, s.opts.Language)
	if err != nil {
		s.metrics.RecordFailure(name, provider.ErrorCode(err))
		s.logger.Error("Transcription failed",
			zap.String("request_id", requestID),
			zap.String("provider", name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", apperrors.WithKind(err, apperrors.KindTranscription)
	}
	s.metrics.RecordSuccess(name, time.Since(start).Seconds(), len(segments))

	text := api.JoinSegments(segments)
	logged := text
	if logged == "" {
		logged = noSpeechPlaceholder
	}
	s.logger.Info("Transcription result",
		zap.String("request_id", requestID),
		zap.Int("segments", len(segments)),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("text", logged))

	return text, nil
}
