package ops

import "context"

// TasksKey is the storage key under which the task list is persisted.
const TasksKey = "tasks"

// Store defines the persistence interface required by the manager.
// The concrete implementations live in the storage package (file, memory,
// SQL); this interface keeps the manager independent of them.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Saver dispatches a write without waiting for it to complete.
// storage.Writer is the background implementation.
type Saver interface {
	Save(key, value string)
}
