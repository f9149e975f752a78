package shutdown

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"cardrender/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json", Output: io.Discard})
}

func TestShutdownRunsHandlers(t *testing.T) {
	m := NewManager(testLogger(), time.Second)

	var calls int32
	m.Register("first", func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	m.Register("second", func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	m.Shutdown()

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 handlers to run, got %d", got)
	}

	select {
	case <-m.Done():
	default:
		t.Error("expected Done channel to be closed after Shutdown")
	}
}

func TestShutdownContinuesAfterHandlerError(t *testing.T) {
	m := NewManager(testLogger(), time.Second)

	var ran atomic.Bool
	m.Register("ok", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	m.Register("failing", func(ctx context.Context) error {
		return fmt.Errorf("cleanup failed")
	})

	m.Shutdown()

	if !ran.Load() {
		t.Error("expected remaining handlers to run despite a failure")
	}
}

func TestShutdownTimeout(t *testing.T) {
	m := NewManager(testLogger(), 50*time.Millisecond)

	m.Register("slow", func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
		}
		return nil
	})

	start := time.Now()
	m.Shutdown()

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("expected shutdown to give up at timeout, took %s", elapsed)
	}
}
