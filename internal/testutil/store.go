// Package testutil builds Stores on either backend for tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/nhle/chckd/internal/slot"
	"github.com/nhle/chckd/internal/store"
)

// Backends lists both backend kinds, for table-driven tests.
var Backends = []store.Kind{store.KindIndexed, store.KindFlat}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLiteStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewFileSlot returns a file slot on an in-memory filesystem.
func NewFileSlot(maxBytes int) *slot.File {
	return slot.NewFile(afero.NewMemMapFs(), "/data/chckd.json", maxBytes)
}

// NewStore returns a Store served by the given backend kind. The flat
// variant forces the probe to report the indexed engine unavailable.
func NewStore(t *testing.T, kind store.Kind, opts ...store.Option) *store.Store {
	t.Helper()

	fileSlot := NewFileSlot(0)
	engines := store.Engines{
		Probe: func() bool { return kind == store.KindIndexed },
		OpenIndexed: func(ctx context.Context) (store.Backend, error) {
			return NewSQLiteStore(t), nil
		},
		OpenFlat: func(ctx context.Context) (store.Backend, error) {
			return store.NewFlatStore(fileSlot, DiscardLogger()), nil
		},
	}

	opts = append([]store.Option{store.WithLogger(DiscardLogger())}, opts...)
	s := store.New(engines, opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Clock is a deterministic time source that advances one second per call.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a Clock at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

// Now returns the current instant and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}
