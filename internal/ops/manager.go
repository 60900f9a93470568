// Package ops implements the task list manager: the single owner of the
// in-memory task list, which validates input, keeps the list sorted and
// dispatches a save after every mutation.
package ops

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jacksmith/todo/internal/model"
)

// Manager owns the task list for one session.
//
// Mutations are applied synchronously and the new list is handed to the Saver
// without waiting for the write. A crash between a mutation and its write
// loses that mutation. Manager is not safe for concurrent use; callers
// serialize mutations (one CLI invocation, or the TUI update loop).
type Manager struct {
	store             Store
	saver             Saver
	logger            *slog.Logger
	defaultImportance model.Importance

	tasks model.TaskList
}

// Option configures a Manager.
type Option func(*Manager)

// WithSaver sets the Saver used after mutations.
// Without one, writes go straight to the store on the caller's goroutine.
func WithSaver(s Saver) Option {
	return func(m *Manager) {
		m.saver = s
	}
}

// WithLogger sets the logger for persistence problems.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDefaultImportance sets the importance used when Add is given "".
func WithDefaultImportance(imp model.Importance) Option {
	return func(m *Manager) {
		if imp.Valid() {
			m.defaultImportance = imp
		}
	}
}

// NewManager returns a Manager with an empty list. Call Load to hydrate it.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:             store,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaultImportance: model.DefaultImportance,
		tasks:             model.TaskList{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.saver == nil {
		m.saver = &inlineSaver{store: store, logger: m.logger}
	}
	return m
}

// Load hydrates the list from the store.
//
// Read failures and corrupt data are logged and leave the manager with an
// empty list. The error is still returned so callers that care (todo
// validate) can report it; normal commands ignore it.
func (m *Manager) Load(ctx context.Context) error {
	raw, ok, err := m.store.Get(ctx, TasksKey)
	if err != nil {
		m.logger.Warn("failed to load task list, starting empty", "key", TasksKey, "error", err)
		m.tasks = model.TaskList{}
		return fmt.Errorf("failed to load task list: %w", err)
	}

	var value *string
	if ok {
		value = &raw
	}

	tasks, err := model.Hydrate(value)
	m.tasks = tasks
	if err != nil {
		m.logger.Warn("discarding corrupt task list", "key", TasksKey, "error", err)
		return err
	}
	return nil
}

// Tasks returns a copy of the current list in importance order.
func (m *Manager) Tasks() model.TaskList {
	return m.tasks.Clone()
}

// Len returns the number of tasks.
func (m *Manager) Len() int {
	return len(m.tasks)
}

// Get returns a copy of the task with the given ID.
func (m *Manager) Get(id string) (model.Task, bool) {
	t := m.tasks.Find(id)
	if t == nil {
		return model.Task{}, false
	}
	return *t, true
}

// DefaultImportance returns the importance applied when Add is given "".
func (m *Manager) DefaultImportance() model.Importance {
	return m.defaultImportance
}

// Add creates a task and saves the list.
// An empty importance means the default. Validation errors leave the list
// untouched and nothing is saved.
func (m *Manager) Add(name string, description *string, importance model.Importance) (*model.Task, error) {
	if importance == "" {
		importance = m.defaultImportance
	}

	next, task, err := model.Add(m.tasks, name, description, importance)
	if err != nil {
		return nil, err
	}

	m.tasks = next
	m.save()
	return task, nil
}

// Remove deletes the task with the given ID and saves the list.
// Unknown IDs are a no-op: nothing changes and nothing is saved.
func (m *Manager) Remove(id string) bool {
	next, removed := model.Remove(m.tasks, id)
	if !removed {
		return false
	}

	m.tasks = next
	m.save()
	return true
}

// Resolve maps a full ID or a unique ID prefix to a task ID.
func (m *Manager) Resolve(ref string) (string, error) {
	ref = model.NormalizeID(ref)
	if ref == "" {
		return "", &NotFoundError{ID: ref}
	}

	var matches []string
	for _, t := range m.tasks {
		id := strings.ToLower(t.ID)
		if id == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ID: ref}
	case 1:
		return matches[0], nil
	default:
		short := make([]string, 0, len(matches))
		for _, id := range matches {
			short = append(short, model.ShortID(id))
		}
		return "", &AmbiguousIDError{Ref: ref, Matches: short}
	}
}

// save serializes the current list and hands it to the saver.
func (m *Manager) save() {
	raw, err := model.Serialize(m.tasks)
	if err != nil {
		m.logger.Error("failed to serialize task list", "error", err)
		return
	}
	m.saver.Save(TasksKey, raw)
}

// inlineSaver writes on the caller's goroutine and logs failures.
type inlineSaver struct {
	store  Store
	logger *slog.Logger
}

func (s *inlineSaver) Save(key, value string) {
	if err := s.store.Set(context.Background(), key, value); err != nil {
		s.logger.Error("persistence write failed", "key", key, "error", err)
	}
}
