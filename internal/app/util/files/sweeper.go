package files

import (
	"context"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	apperrors "whisperd/internal/app/errors"
)

const (
	DefaultSweepInterval    = time.Minute
	DefaultSweepMaxAttempts = 5
)

// Sweeper retries removal of files that could not be deleted in-line.
type Sweeper struct {
	mu          sync.Mutex
	pending     map[string]int
	interval    time.Duration
	maxAttempts int
	remove      func(string) error
	logger      *zap.Logger
}

// NewSweeper creates a sweeper. Non-positive arguments fall back to defaults.
func NewSweeper(interval time.Duration, maxAttempts int, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultSweepMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		pending:     make(map[string]int),
		interval:    interval,
		maxAttempts: maxAttempts,
		remove:      os.Remove,
		logger:      logger,
	}
}

// Add queues path for a later removal attempt.
func (s *Sweeper) Add(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[path]; !ok {
		s.pending[path] = 0
	}
}

// Pending returns the queued paths in sorted order.
func (s *Sweeper) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.pending))
	for p := range s.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Sweep makes one removal attempt per queued path and returns how many remain.
func (s *Sweeper) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for path, attempts := range s.pending {
		err := s.remove(path)
		if err == nil || os.IsNotExist(err) {
			delete(s.pending, path)
			s.logger.Debug("Swept staged upload", zap.String("path", path))
			continue
		}

		attempts++
		if attempts >= s.maxAttempts {
			delete(s.pending, path)
			s.logger.Error("Giving up on staged upload removal",
				zap.String("path", path),
				zap.Int("attempts", attempts),
				zap.String("kind", string(apperrors.KindCleanup)),
				zap.Error(apperrors.CleanupError(err)))
			continue
		}
		s.pending[path] = attempts
	}
	return len(s.pending)
}

// Run sweeps on every tick until ctx is done, then sweeps once more.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			if left := s.Sweep(); left > 0 {
				s.logger.Warn("Staged uploads left behind at shutdown", zap.Strings("paths", s.Pending()))
			}
			return
		}
	}
}

// RegisterCleanupMetrics registers the removal-failure counter and the sweeper
// backlog gauge. The returned counter is meant for Stager.SetFailureCounter.
func RegisterCleanupMetrics(reg prometheus.Registerer, s *Sweeper) prometheus.Counter {
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "whisperd",
		Name:      "cleanup_failures_total",
		Help:      "Staged uploads that could not be removed after a request.",
	})
	backlog := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "whisperd",
		Name:      "cleanup_pending_files",
		Help:      "Staged uploads waiting for a sweeper retry.",
	}, func() float64 {
		return float64(len(s.Pending()))
	})
	reg.MustRegister(failures, backlog)
	return failures
}
