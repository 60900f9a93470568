package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore records every Set call. If gate is non-nil, Set blocks until
// it is closed.
type recordingStore struct {
	mu     sync.Mutex
	writes []string
	gate   chan struct{}
	err    error
}

func (r *recordingStore) Set(ctx context.Context, key, value string) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.writes = append(r.writes, key+"="+value)
	return nil
}

func (r *recordingStore) Writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes...)
}

func flushCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestWriter(t *testing.T) {
	t.Run("save is applied after flush", func(t *testing.T) {
		store := &recordingStore{}
		w := NewWriter(store)
		defer w.Close(flushCtx(t))

		w.Save("tasks", "[]")
		require.NoError(t, w.Flush(flushCtx(t)))

		assert.Equal(t, []string{"tasks=[]"}, store.Writes())
		assert.NoError(t, w.LastError())
	})

	t.Run("flush with nothing queued returns immediately", func(t *testing.T) {
		w := NewWriter(&recordingStore{})
		defer w.Close(flushCtx(t))

		assert.NoError(t, w.Flush(flushCtx(t)))
	})

	t.Run("save does not block on a slow store", func(t *testing.T) {
		store := &recordingStore{gate: make(chan struct{})}
		w := NewWriter(store)

		done := make(chan struct{})
		go func() {
			w.Save("tasks", "1")
			w.Save("tasks", "2")
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Save blocked on the store")
		}

		close(store.gate)
		require.NoError(t, w.Close(flushCtx(t)))
		writes := store.Writes()
		require.NotEmpty(t, writes)
		assert.Equal(t, "tasks=2", writes[len(writes)-1])
	})

	t.Run("queued saves to the same key coalesce to the latest value", func(t *testing.T) {
		store := &recordingStore{gate: make(chan struct{})}
		w := NewWriter(store)

		w.Save("tasks", "1")
		// Wait until the first write is in flight.
		time.Sleep(20 * time.Millisecond)
		w.Save("tasks", "2")
		w.Save("tasks", "3")
		w.Save("tasks", "4")

		close(store.gate)
		require.NoError(t, w.Flush(flushCtx(t)))
		require.NoError(t, w.Close(flushCtx(t)))

		writes := store.Writes()
		assert.LessOrEqual(t, len(writes), 2)
		assert.Equal(t, "tasks=4", writes[len(writes)-1])
	})

	t.Run("different keys are written in queue order", func(t *testing.T) {
		store := &recordingStore{gate: make(chan struct{})}
		w := NewWriter(store)

		w.Save("a", "1")
		w.Save("b", "2")
		w.Save("c", "3")
		close(store.gate)
		require.NoError(t, w.Close(flushCtx(t)))

		writes := store.Writes()
		require.Len(t, writes, 3)
		assert.Equal(t, []string{"a=1", "b=2", "c=3"}, writes)
	})

	t.Run("write failures are logged not returned", func(t *testing.T) {
		boom := errors.New("disk full")
		store := &recordingStore{err: boom}

		var buf bytes.Buffer
		var mu sync.Mutex
		logger := slog.New(slog.NewTextHandler(&syncWriter{mu: &mu, buf: &buf}, nil))

		w := NewWriter(store, WithWriterLogger(logger))
		w.Save("tasks", "[]")
		require.NoError(t, w.Close(flushCtx(t)))

		assert.Equal(t, 1, w.Failures())
		var werr *PersistenceWriteError
		require.ErrorAs(t, w.LastError(), &werr)
		assert.Equal(t, "tasks", werr.Key)
		assert.ErrorIs(t, werr, boom)
		assert.Equal(t, `failed to persist "tasks": disk full`, werr.Error())

		mu.Lock()
		defer mu.Unlock()
		assert.Contains(t, buf.String(), "persistence write failed")
		assert.Contains(t, buf.String(), "disk full")
	})

	t.Run("save after close is dropped", func(t *testing.T) {
		store := &recordingStore{}
		w := NewWriter(store)
		require.NoError(t, w.Close(flushCtx(t)))

		w.Save("tasks", "late")
		assert.NoError(t, w.Flush(flushCtx(t)))
		assert.Empty(t, store.Writes())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		w := NewWriter(&recordingStore{})
		require.NoError(t, w.Close(flushCtx(t)))
		require.NoError(t, w.Close(flushCtx(t)))
	})

	t.Run("flush honors context", func(t *testing.T) {
		store := &recordingStore{gate: make(chan struct{})}
		w := NewWriter(store)
		w.Save("tasks", "stuck")

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, w.Flush(ctx), context.DeadlineExceeded)

		close(store.gate)
		require.NoError(t, w.Close(flushCtx(t)))
	})
}

// syncWriter serializes writes from the background goroutine.
type syncWriter struct {
	mu  *sync.Mutex
	buf *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}
