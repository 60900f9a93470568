package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/storage"
)

// shutdownTimeout bounds how long a command waits for queued writes on exit.
const shutdownTimeout = 5 * time.Second

// session is everything a command needs: the configured store, the
// background writer and a loaded manager.
type session struct {
	storage *storage.Storage
	config  *storage.Config
	store   storage.KV
	writer  *storage.Writer
	manager *ops.Manager
	logger  *slog.Logger

	logFile *os.File
}

type sessionOptions struct {
	// logWriter receives log output. Defaults to stderr.
	logWriter io.Writer
	// logFile, if set, sends logs to this file under .todo/ instead.
	logFile string
}

// commandContext returns cmd's context, or Background for direct calls.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// loadConfig reads .todoconfig.yaml and applies the global flag overrides.
func loadConfig(s *storage.Storage) (*storage.Config, error) {
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	return cfg, nil
}

// newLogger builds the slog logger described by cfg.
func newLogger(cfg *storage.Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", cfg.LogLevel)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log_format %q (want text or json)", cfg.LogFormat)
}

// openSession opens .todo/ in the working directory, connects the configured
// backend and loads the task list. A corrupt or unreadable list is logged by
// the manager and the session starts empty.
func openSession(ctx context.Context, opts sessionOptions) (*session, error) {
	s, err := storage.Open(".")
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(s)
	if err != nil {
		return nil, err
	}

	sess := &session{storage: s, config: cfg}

	logWriter := opts.logWriter
	if logWriter == nil {
		logWriter = os.Stderr
	}
	if opts.logFile != "" {
		f, err := os.OpenFile(filepath.Join(s.TodoPath(), opts.logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sess.logFile = f
		logWriter = f
	}

	sess.logger, err = newLogger(cfg, logWriter)
	if err != nil {
		sess.closeLog()
		return nil, err
	}

	defaultImp := model.DefaultImportance
	if cfg.DefaultImportance != "" {
		defaultImp, err = model.ParseImportance(cfg.DefaultImportance)
	}
	if err != nil {
		sess.closeLog()
		return nil, fmt.Errorf("invalid default_importance %q in config: %w", cfg.DefaultImportance, err)
	}

	sess.store, err = storage.OpenStore(ctx, s, cfg)
	if err != nil {
		sess.closeLog()
		return nil, err
	}

	sess.writer = storage.NewWriter(sess.store, storage.WithWriterLogger(sess.logger))
	sess.manager = ops.NewManager(sess.store,
		ops.WithSaver(sess.writer),
		ops.WithLogger(sess.logger),
		ops.WithDefaultImportance(defaultImp),
	)

	// Load problems are logged and leave the list empty.
	_ = sess.manager.Load(ctx)

	return sess, nil
}

// Close waits for queued writes, then releases the store.
// Write failures have already been logged by the writer.
func (s *session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.writer.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("timed out saving task list: %w", err))
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close store: %w", err))
	}
	s.closeLog()
	return errors.Join(errs...)
}

func (s *session) closeLog() {
	if s.logFile != nil {
		s.logFile.Close()
		s.logFile = nil
	}
}
