package serve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"whisperd/internal/app"
	"whisperd/internal/app/logging"
	"whisperd/internal/config"
)

// Options holds command-line overrides. Only flags the user set are applied.
type Options struct {
	Host          string
	Port          int
	Provider      string
	Language      string
	LogLevel      string
	MaxConcurrent int
}

var opts Options

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the model and start the HTTP server",
	Long: `Load the configured model once, then serve POST /transcribe until interrupted.

Configuration comes from .env, the environment and PROVIDERS_CONFIG; flags override both.`,
	RunE: Run,
}

// BindFlags registers the override flags as persistent flags on root so they
// work with and without the serve subcommand.
func BindFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&opts.Host, "host", "", "listen host (HOST)")
	flags.IntVarP(&opts.Port, "port", "p", 0, "listen port (PORT)")
	flags.StringVar(&opts.Provider, "provider", "", "transcription provider: whisper_cpp, whisper_server, openai (TRANSCRIBE_PROVIDER)")
	flags.StringVarP(&opts.Language, "language", "l", "", "fixed transcription language (TRANSCRIBE_LANGUAGE)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn or error (LOG_LEVEL)")
	flags.IntVar(&opts.MaxConcurrent, "max-concurrent", 0, "concurrent model calls (MAX_CONCURRENT_TRANSCRIPTIONS)")
}

// Apply copies every flag the user set onto cfg.
func (o Options) Apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = o.Host
	}
	if flags.Changed("port") {
		cfg.Server.Port = o.Port
	}
	if flags.Changed("provider") {
		cfg.Transcription.Provider = o.Provider
	}
	if flags.Changed("language") {
		cfg.Transcription.Language = o.Language
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if flags.Changed("max-concurrent") {
		cfg.Transcription.MaxConcurrent = o.MaxConcurrent
	}
}

// LoadConfig reads .env and the environment, applies flag overrides and validates.
func LoadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	envPath, err := config.LoadEnv()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	opts.Apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, envPath, nil
}

// Run loads the model, serves until SIGINT/SIGTERM and shuts down gracefully.
func Run(cmd *cobra.Command, args []string) error {
	cfg, envPath, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if envPath != "" {
		logger.Info("Loaded environment variables", zap.String("path", envPath))
	}

	srv, err := app.InitializeServer(cfg, logger)
	if err != nil {
		logger.Error("Startup failed", zap.Error(err))
		return err
	}
	if err := srv.Start(); err != nil {
		logger.Error("Startup failed", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case serveErr = <-srv.Errors():
	}

	shutdownCtx := context.Background()
	if cfg.Server.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, cfg.Server.ShutdownTimeout)
		defer cancel()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(serveErr, fmt.Errorf("shutdown: %w", err))
	}
	return serveErr
}
