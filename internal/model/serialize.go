package model

import (
	"encoding/json"
	"fmt"
)

// Serialize encodes the list as its canonical persisted form: a JSON array of
// task records. An empty list encodes as "[]".
func Serialize(list TaskList) (string, error) {
	if list == nil {
		list = TaskList{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode task list: %w", err)
	}
	return string(data), nil
}

// Hydrate builds a sorted task list from a persisted value.
// A nil or empty raw value means nothing was ever saved and yields an empty
// list. If raw cannot be parsed, Hydrate returns an empty list together with a
// *CorruptStateError; callers are expected to log it and carry on.
// Records without an ID are assigned a fresh one.
func Hydrate(raw *string) (TaskList, error) {
	if raw == nil || *raw == "" {
		return TaskList{}, nil
	}

	var list TaskList
	if err := json.Unmarshal([]byte(*raw), &list); err != nil {
		return TaskList{}, &CorruptStateError{Err: err}
	}

	for i := range list {
		if !list[i].Importance.Valid() {
			return TaskList{}, &CorruptStateError{
				Err: fmt.Errorf("task %d has unknown importance %q", i, list[i].Importance),
			}
		}
		if list[i].ID == "" {
			list[i].ID = NewID()
		}
	}

	return SortByImportance(list), nil
}
