package model

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// SortByImportance returns a copy of list sorted high, medium, low.
// Tasks with equal importance keep their relative order.
func SortByImportance(list TaskList) TaskList {
	out := list.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance.Rank() < out[j].Importance.Rank()
	})
	return out
}

// IsSorted reports whether list satisfies the importance ordering.
func IsSorted(list TaskList) bool {
	for i := 1; i < len(list); i++ {
		if list[i-1].Importance.Rank() > list[i].Importance.Rank() {
			return false
		}
	}
	return true
}

// ValidateName checks that a task name is not empty or whitespace-only
// and is valid UTF-8.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	// JSON encoding would replace invalid bytes, so the stored name would differ.
	if !utf8.ValidString(name) {
		return &ValidationError{Field: "name", Err: ErrInvalidName}
	}
	return nil
}

// Add returns a new list containing a freshly created task, re-sorted by
// importance, together with the created task.
// On a validation failure the input list is returned unchanged.
func Add(list TaskList, name string, description *string, importance Importance) (TaskList, *Task, error) {
	if err := ValidateName(name); err != nil {
		return list, nil, err
	}
	if !importance.Valid() {
		return list, nil, &ValidationError{Field: "importance", Err: ErrInvalidImportance}
	}

	task := Task{
		ID:          NewID(),
		Name:        name,
		Description: description,
		Importance:  importance,
	}

	next := make(TaskList, 0, len(list)+1)
	next = append(next, list...)
	next = append(next, task)
	return SortByImportance(next), &task, nil
}

// Remove returns a copy of list without the task whose ID matches id.
// Reports whether anything was removed. Removing never breaks the sort order,
// so the result is not re-sorted.
func Remove(list TaskList, id string) (TaskList, bool) {
	out := make(TaskList, 0, len(list))
	removed := false
	for _, t := range list {
		if t.ID == id {
			removed = true
			continue
		}
		out = append(out, t)
	}
	return out, removed
}
