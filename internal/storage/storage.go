// Package storage provides key-value persistence for todo.
//
// The default backend keeps each key in its own file under a .todo/
// directory. MemoryStore and SQLStore implement the same Get/Set contract.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	// todoDir is the name of the todo directory.
	todoDir = ".todo"
	// dataDir is the subdirectory holding one file per key.
	dataDir = "data"
	// configFile is the name of the metadata file within .todo/.
	configFile = "config.yaml"
	// dataExt is appended to each key to form its file name.
	dataExt = ".json"
)

// keyRegex restricts keys to names that are safe as file names.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// StorageConfig contains settings stored in .todo/config.yaml.
type StorageConfig struct {
	Version int `yaml:"version"`
}

// Storage provides access to a .todo/ directory.
type Storage struct {
	root string // path to directory containing .todo/
}

// Open returns a Storage for the given directory.
// Returns error if .todo/ does not exist.
func Open(dir string) (*Storage, error) {
	todoPath := filepath.Join(dir, todoDir)
	info, err := os.Stat(todoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".todo/ directory not found in %s (run `todo init`)", dir)
		}
		return nil, fmt.Errorf("failed to access .todo/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".todo is not a directory")
	}

	return &Storage{root: dir}, nil
}

// Init creates the .todo/ directory structure.
// Returns error if .todo/ already exists.
func Init(dir string) (*Storage, error) {
	todoPath := filepath.Join(dir, todoDir)

	if _, err := os.Stat(todoPath); err == nil {
		return nil, fmt.Errorf(".todo/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .todo/: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(todoPath, dataDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create .todo/data/: %w", err)
	}

	cfg := StorageConfig{Version: 1}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		os.RemoveAll(todoPath)
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(todoPath, configFile), cfgData, 0644); err != nil {
		os.RemoveAll(todoPath)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir}, nil
}

// Root returns the root directory containing .todo/.
func (s *Storage) Root() string {
	return s.root
}

// TodoPath returns the path to the .todo/ directory.
func (s *Storage) TodoPath() string {
	return filepath.Join(s.root, todoDir)
}

// LoadStorageConfig reads .todo/config.yaml.
func (s *Storage) LoadStorageConfig() (*StorageConfig, error) {
	data, err := os.ReadFile(filepath.Join(s.TodoPath(), configFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}
	var cfg StorageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}
	return &cfg, nil
}

// keyPath returns the file that holds the value for key.
func (s *Storage) keyPath(key string) (string, error) {
	if !keyRegex.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, todoDir, dataDir, key+dataExt), nil
}

// Get returns the value stored under key.
// ok is false if nothing was ever stored.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Never written
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set stores value under key.
// The file is replaced atomically so a crash never leaves a partial value.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// Write to a temp file in the same directory so the rename is atomic
	tmp, err := os.CreateTemp(dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}

	return nil
}

// Close is a no-op for the file backend.
func (s *Storage) Close() error {
	return nil
}
