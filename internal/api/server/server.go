package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	_ "whisperd/docs" // Generated swagger docs
	"whisperd/internal/api/middleware"
	v1routes "whisperd/internal/api/v1/routes"
	"whisperd/internal/app/util/files"
)

// Config represents API server configuration
type Config struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	Environment      string
	MaxUploadMB      int64
	CORSAllowOrigins []string
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	sweeper    *files.Sweeper
	logger     *zap.Logger

	listener     net.Listener
	errCh        chan error
	stopSweeper  context.CancelFunc
	sweeperDone  sync.WaitGroup
	shutdownOnce sync.Once
}

// NewServer creates a new API server
func NewServer(
	config Config,
	container *v1routes.ServiceContainer,
	sweeper *files.Sweeper,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Server {
	// Set Gin mode based on environment
	switch config.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	if config.MaxUploadMB > 0 {
		router.MaxMultipartMemory = config.MaxUploadMB << 20
	}

	cors := middleware.DefaultCORSConfig()
	if len(config.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = config.CORSAllowOrigins
	}

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.NewHTTPMetrics(registry).Middleware())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cors))

	v1routes.RegisterRoutes(router, container)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	// Swagger documentation routes
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API documentation info endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":       "whisperd speech-to-text API",
			"version":       "1.0",
			"documentation": "/swagger/index.html",
			"endpoints": gin.H{
				"transcribe": "/transcribe",
				"health":     "/health",
				"provider":   "/provider",
				"metrics":    "/metrics",
			},
		})
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		sweeper:    sweeper,
		logger:     logger,
		errCh:      make(chan error, 1),
	}
}

// Start binds the listener, then serves in the background and starts the
// cleanup sweeper. Bind failures are returned directly.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("host", s.config.Host),
		zap.Int("port", s.config.Port),
		zap.String("environment", s.config.Environment),
	)

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln

	if s.sweeper != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopSweeper = cancel
		s.sweeperDone.Add(1)
		go func() {
			defer s.sweeperDone.Done()
			s.sweeper.Run(ctx)
		}()
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", zap.Error(err))
			s.errCh <- err
		}
		close(s.errCh)
	}()

	s.logger.Info("API server started successfully",
		zap.String("address", ln.Addr().String()),
	)

	return nil
}

// Errors delivers a fatal serve error, if any. It is closed when serving stops.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Shutdown gracefully shuts down the server, then runs a final sweep.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.logger.Info("Shutting down API server...")

		if err = s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("Server forced to shutdown", zap.Error(err))
		}

		if s.stopSweeper != nil {
			s.stopSweeper()
			s.sweeperDone.Wait()
		}

		if err == nil {
			s.logger.Info("API server shutdown complete")
		}
	})
	return err
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
