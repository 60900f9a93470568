package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultWriteTimeout bounds a single background write.
const DefaultWriteTimeout = 10 * time.Second

// Setter is the write half of a key-value store.
type Setter interface {
	Set(ctx context.Context, key, value string) error
}

// PersistenceWriteError indicates that a background write failed.
// The in-memory state stays authoritative; the next load misses the change.
type PersistenceWriteError struct {
	Key string
	Err error
}

func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("failed to persist %q: %v", e.Key, e.Err)
}

func (e *PersistenceWriteError) Unwrap() error {
	return e.Err
}

// Writer applies writes to a store in the background.
//
// Save never blocks on the store. Writes are applied by a single goroutine in
// the order keys were first queued; if a key is saved again before its
// previous value was written, only the latest value is written. Failures are
// logged and never returned to the caller of Save.
type Writer struct {
	store   Setter
	logger  *slog.Logger
	timeout time.Duration

	mu       sync.Mutex
	pending  map[string]string
	order    []string
	busy     bool
	idle     chan struct{} // closed while there is no queued or in-flight write
	closed   bool
	lastErr  error
	failures int

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger sets the logger used for write failures.
func WithWriterLogger(l *slog.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithWriteTimeout bounds each individual write.
func WithWriteTimeout(d time.Duration) WriterOption {
	return func(w *Writer) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// NewWriter starts a background writer for store. Call Close to stop it.
func NewWriter(store Setter, opts ...WriterOption) *Writer {
	w := &Writer{
		store:   store,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: DefaultWriteTimeout,
		pending: make(map[string]string),
		idle:    make(chan struct{}),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	close(w.idle)
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w
}

// Save queues value to be written under key and returns immediately.
func (w *Writer) Save(key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.logger.Error("write dropped: writer closed", "key", key)
		return
	}

	if _, queued := w.pending[key]; !queued {
		w.order = append(w.order, key)
	}
	w.pending[key] = value
	if !w.busy {
		w.busy = true
		w.idle = make(chan struct{})
	}

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Flush waits until every queued write has been attempted.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes queued writes and stops the background goroutine.
// Saves after Close are dropped and logged.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.done)
	}
	w.mu.Unlock()

	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastError returns the most recent write failure, or nil.
func (w *Writer) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Failures returns the number of writes that have failed.
func (w *Writer) Failures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failures
}

func (w *Writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.done:
			w.drain()
			return
		}
	}
}

// drain writes queued values until the queue is empty.
func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if len(w.order) == 0 {
			if w.busy {
				w.busy = false
				close(w.idle)
			}
			w.mu.Unlock()
			return
		}
		key := w.order[0]
		w.order = w.order[1:]
		value := w.pending[key]
		delete(w.pending, key)
		w.mu.Unlock()

		w.write(key, value)
	}
}

func (w *Writer) write(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.store.Set(ctx, key, value); err != nil {
		werr := &PersistenceWriteError{Key: key, Err: err}
		w.logger.Error("persistence write failed", "key", key, "error", err)

		w.mu.Lock()
		w.lastErr = werr
		w.failures++
		w.mu.Unlock()
		return
	}
	w.logger.Debug("persisted", "key", key, "bytes", len(value))
}
