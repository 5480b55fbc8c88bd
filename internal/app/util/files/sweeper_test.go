package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSweeper_GivesUpAfterMaxAttempts(t *testing.T) {
	s := NewSweeper(time.Hour, 3, nil)
	var calls int32
	s.remove = func(string) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("locked")
	}
	s.Add("/tmp/upload-1.wav")
	s.Add("/tmp/upload-1.wav")

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Sweep())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Empty(t, s.Pending())
}

func TestSweeper_GiveUpLoggedAsCleanup(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := NewSweeper(time.Hour, 1, zap.New(core))
	s.remove = func(string) error { return errors.New("locked") }
	s.Add("/tmp/upload-2.wav")

	assert.Equal(t, 0, s.Sweep())

	entries := logs.FilterMessage("Giving up on staged upload removal").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "cleanup", fields["kind"])
	assert.Equal(t, "staged file not removed: locked", fields["error"])
	assert.Equal(t, int64(1), fields["attempts"])
}

func TestSweeper_MissingFileCountsAsRemoved(t *testing.T) {
	s := NewSweeper(0, 0, nil)
	s.Add(filepath.Join(t.TempDir(), "gone.wav"))
	assert.Equal(t, 0, s.Sweep())
}

func TestSweeper_RunSweepsOnShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload-x.wav")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	s := NewSweeper(time.Hour, 5, nil)
	s.Add(path)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.NoFileExists(t, path)
}

func TestSweeper_RunSweepsOnTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload-y.wav")
	require.NoError(t, os.WriteFile(path, []byte("y"), 0o644))

	s := NewSweeper(10*time.Millisecond, 5, nil)
	s.Add(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	assert.Eventually(t, func() bool { return len(s.Pending()) == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.NoFileExists(t, path)
}

func TestRegisterCleanupMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewSweeper(time.Hour, 5, nil)
	failures := RegisterCleanupMetrics(reg, s)

	s.Add("/tmp/upload-a.wav")
	s.Add("/tmp/upload-b.wav")
	failures.Inc()

	assert.Equal(t, 1.0, promtest.ToFloat64(failures))
	count, err := promtest.GatherAndCount(reg, "whisperd_cleanup_pending_files")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "whisperd_cleanup_pending_files" {
			assert.Equal(t, 2.0, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
}
