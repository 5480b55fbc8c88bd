package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	apperrors "whisperd/internal/app/errors"
)

// DefaultSuffix is the extension given to staged uploads.
const DefaultSuffix = ".wav"

// Windows keeps a handle open briefly after the reader is closed.
const windowsRemoveDelay = 200 * time.Millisecond

// Stager writes uploads to uniquely named temporary files.
type Stager struct {
	dir         string
	suffix      string
	sweeper     *Sweeper
	logger      *zap.Logger
	failures    prometheus.Counter
	remove      func(string) error
	removeDelay time.Duration
}

// NewStager creates a stager rooted at dir. An empty dir means os.TempDir().
func NewStager(dir, suffix string, sweeper *Sweeper, logger *zap.Logger) (*Stager, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	var delay time.Duration
	if runtime.GOOS == "windows" {
		delay = windowsRemoveDelay
	}

	return &Stager{
		dir:         dir,
		suffix:      suffix,
		sweeper:     sweeper,
		logger:      logger,
		remove:      os.Remove,
		removeDelay: delay,
	}, nil
}

// SetFailureCounter registers a counter incremented on every failed removal.
func (s *Stager) SetFailureCounter(c prometheus.Counter) {
	s.failures = c
}

// Dir returns the staging directory.
func (s *Stager) Dir() string { return s.dir }

// StagedFile is an upload persisted to disk for the duration of one request.
type StagedFile struct {
	Path string
	Size int64

	stager *Stager
}

// Stage copies r into a fresh temporary file. The file is closed before returning.
func (s *Stager) Stage(r io.Reader) (*StagedFile, error) {
	f, err := os.CreateTemp(s.dir, "upload-*"+s.suffix)
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	n, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		if err := s.remove(f.Name()); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to remove partial upload",
				zap.String("path", f.Name()),
				zap.String("kind", string(apperrors.KindCleanup)),
				zap.Error(apperrors.CleanupError(err)))
			if s.sweeper != nil {
				s.sweeper.Add(f.Name())
			}
		}
		if copyErr != nil {
			return nil, fmt.Errorf("write staging file: %w", copyErr)
		}
		return nil, fmt.Errorf("close staging file: %w", closeErr)
	}

	return &StagedFile{Path: f.Name(), Size: n, stager: s}, nil
}

// Remove deletes the staged file. Failures are logged and handed to the
// sweeper, never returned.
func (f *StagedFile) Remove() {
	s := f.stager
	if s.removeDelay > 0 {
		time.Sleep(s.removeDelay)
	}

	err := s.remove(f.Path)
	if err == nil || os.IsNotExist(err) {
		return
	}

	s.logger.Warn("Failed to remove staged upload",
		zap.String("path", f.Path),
		zap.String("kind", string(apperrors.KindCleanup)),
		zap.Error(apperrors.CleanupError(err)))
	if s.failures != nil {
		s.failures.Inc()
	}
	if s.sweeper != nil {
		s.sweeper.Add(f.Path)
	}
}

func ensureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("create staging directory %s: %w", dir, err)
		}
	} else if err != nil {
		return err
	}
	return nil
}

// CleanStale removes leftover uploads matching the stager pattern that are
// older than maxAge. It returns the number of files removed.
func (s *Stager) CleanStale(maxAge time.Duration) (int, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "upload-*"+s.suffix))
	if err != nil {
		return 0, err
	}

	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := s.remove(path); err == nil {
			removed++
		}
	}
	return removed, nil
}
