package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .todo/).
	userConfigFile = ".todoconfig.yaml"

	// Default configuration values
	DefaultBackend           = BackendFile
	DefaultDefaultImportance = "low"
	DefaultLogLevel          = "warn"
	DefaultLogFormat         = "text"
)

// Storage backends selectable in .todoconfig.yaml.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendMySQL    = DriverMySQL
	BackendPostgres = DriverPostgres
)

// Config represents user configuration from .todoconfig.yaml.
// This file is user-managed and never written by todo.
type Config struct {
	// Backend selects where the task list is persisted.
	Backend string `yaml:"backend"`

	// DSN is the connection string for the mysql and postgres backends.
	DSN string `yaml:"dsn"`

	// Table overrides the key-value table name for SQL backends.
	Table string `yaml:"table"`

	// DefaultImportance is the importance for new tasks when none is given.
	DefaultImportance string `yaml:"default_importance"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Backend:           DefaultBackend,
		DefaultImportance: DefaultDefaultImportance,
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
	}
}

// LoadConfig loads .todoconfig.yaml if it exists, otherwise returns defaults.
// The config file is a sibling to .todo/ (in the same directory).
// Partial config files are merged with defaults.
func (s *Storage) LoadConfig() (*Config, error) {
	return LoadConfigFile(s.ConfigPath())
}

// LoadConfigFile loads a config file from path, merging it over defaults.
// A missing file yields the defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}

// KV is a string key-value store with a Close method.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// OpenStore returns the backend selected by cfg.
// The file backend is s itself.
func OpenStore(ctx context.Context, s *Storage, cfg *Config) (KV, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = DefaultBackend
	}

	switch backend {
	case BackendFile:
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendMySQL, BackendPostgres:
		return OpenSQL(ctx, backend, cfg.DSN, cfg.Table)
	}
	return nil, fmt.Errorf("unknown backend %q (want file, memory, mysql or postgres)", backend)
}
