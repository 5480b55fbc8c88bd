package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"whisperd/internal/api/server"
	v1routes "whisperd/internal/api/v1/routes"
	"whisperd/internal/api/v1/services"
	"whisperd/internal/app/api/provider"
	"whisperd/internal/app/util/files"
	"whisperd/internal/config"
)

const staleUploadAge = time.Hour

// ServerSet wires a configured API server from *config.Config and *zap.Logger.
var ServerSet = wire.NewSet(
	provideRegistry,
	provideModel,
	provideSweeper,
	provideStager,
	provideProviderMetrics,
	provideServiceContainer,
	provideServerConfig,
	server.NewServer,
)

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// provideModel opens the configured provider once and guards it with the
// concurrency limit. Startup fails if the model cannot be loaded.
func provideModel(cfg *config.Config, logger *zap.Logger) (*provider.SerializedProvider, error) {
	settings, err := cfg.ProviderSettings()
	if err != nil {
		return nil, err
	}

	logger.Info("Opening transcription provider",
		zap.String("provider", cfg.Transcription.Provider),
		zap.String("language", cfg.Transcription.Language),
		zap.Int("max_concurrent", cfg.Transcription.MaxConcurrent))

	factory := provider.NewProviderFactory(logger)
	model, err := factory.Open(context.Background(), cfg.Transcription.Provider, settings)
	if err != nil {
		return nil, fmt.Errorf("load %s model: %w", cfg.Transcription.Provider, err)
	}
	return provider.NewSerializedProvider(model, cfg.Transcription.MaxConcurrent), nil
}

func provideSweeper(cfg *config.Config, logger *zap.Logger) *files.Sweeper {
	return files.NewSweeper(cfg.Staging.CleanupRetryInterval, cfg.Staging.CleanupMaxAttempts, logger)
}

func provideStager(cfg *config.Config, sweeper *files.Sweeper, reg *prometheus.Registry, logger *zap.Logger) (*files.Stager, error) {
	stager, err := files.NewStager(cfg.Staging.Dir, cfg.Staging.Suffix, sweeper, logger)
	if err != nil {
		return nil, err
	}
	stager.SetFailureCounter(files.RegisterCleanupMetrics(reg, sweeper))

	// leftovers from a previous run that died mid-request
	if cfg.Staging.Dir != "" {
		if n, err := stager.CleanStale(staleUploadAge); err != nil {
			logger.Warn("Failed to scan staging directory", zap.String("dir", stager.Dir()), zap.Error(err))
		} else if n > 0 {
			logger.Info("Removed stale staged uploads", zap.Int("count", n), zap.String("dir", stager.Dir()))
		}
	}
	return stager, nil
}

func provideProviderMetrics(reg *prometheus.Registry) provider.ProviderMetrics {
	return provider.NewProviderMetrics(reg)
}

func provideServiceContainer(
	cfg *config.Config,
	model *provider.SerializedProvider,
	stager *files.Stager,
	metrics provider.ProviderMetrics,
	logger *zap.Logger,
) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		TranscriptionService: services.NewTranscriptionService(model, stager, services.TranscriptionOptions{
			Language: cfg.Transcription.Language,
			Timeout:  cfg.Transcription.Timeout,
		}, metrics, logger),
		ProviderService: services.NewProviderService(model, cfg.Transcription.Language, model.Limit()),
	}
}

func provideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:             cfg.Server.Host,
		Port:             cfg.Server.Port,
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
		IdleTimeout:      cfg.Server.IdleTimeout,
		Environment:      cfg.Environment,
		MaxUploadMB:      cfg.Server.MaxUploadMB,
		CORSAllowOrigins: cfg.Server.CORSAllowOrigins,
	}
}
