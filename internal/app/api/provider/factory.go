package provider

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// LoggerKey is the settings key under which the factory passes its logger to creators
const LoggerKey = "_logger"

// LoggerFrom returns the logger stored in a creator's settings, or a no-op logger
func LoggerFrom(config map[string]interface{}) *zap.Logger {
	if l, ok := config[LoggerKey].(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

// DefaultProviderFactory builds the single model handle used by the server
type DefaultProviderFactory struct {
	logger *zap.Logger
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(logger *zap.Logger) *DefaultProviderFactory {
	return &DefaultProviderFactory{logger: logger}
}

// CreateProvider creates a provider instance based on type and configuration
func (f *DefaultProviderFactory) CreateProvider(providerType string, config map[string]interface{}) (TranscriptionProvider, error) {
	creator, err := GetProviderCreator(providerType)
	if err != nil {
		return nil, fmt.Errorf("unknown provider type %q (registered: %s): %w",
			providerType, strings.Join(ListRegisteredProviders(), ", "), err)
	}

	settings := make(map[string]interface{}, len(config)+1)
	for k, v := range config {
		settings[k] = v
	}
	settings[LoggerKey] = f.logger
	return creator(settings)
}

// Open creates, validates and loads a provider. It blocks until the model is
// ready, so callers invoke it before opening the listener.
func (f *DefaultProviderFactory) Open(ctx context.Context, providerType string, config map[string]interface{}) (TranscriptionProvider, error) {
	p, err := f.CreateProvider(providerType, config)
	if err != nil {
		return nil, err
	}

	if err := p.ValidateConfiguration(); err != nil {
		return nil, fmt.Errorf("%s configuration invalid: %w", providerType, err)
	}

	if loader, ok := p.(Loader); ok {
		f.logger.Info("Loading transcription model", zap.String("provider", providerType))
		if err := loader.Load(ctx); err != nil {
			return nil, fmt.Errorf("%s model load failed: %w", providerType, err)
		}
	}

	info := p.GetProviderInfo()
	f.logger.Info("Model loaded and ready",
		zap.String("provider", info.Name),
		zap.String("display_name", info.DisplayName),
		zap.String("model", info.DefaultModel),
	)
	return p, nil
}
