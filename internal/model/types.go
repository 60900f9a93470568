// Package model defines the core data structures for todo.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Importance represents how urgent a task is.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// DefaultImportance is used for new tasks when none is chosen.
const DefaultImportance = ImportanceLow

// ErrInvalidImportance is returned when an importance level cannot be parsed.
var ErrInvalidImportance = errors.New("invalid importance")

// importanceRank maps each level to its sort position (lower sorts first).
var importanceRank = map[Importance]int{
	ImportanceHigh:   0,
	ImportanceMedium: 1,
	ImportanceLow:    2,
}

// Rank returns the sort position of the importance level.
// High is 0, medium is 1, low is 2. Unknown values rank after low.
func (i Importance) Rank() int {
	if r, ok := importanceRank[i]; ok {
		return r
	}
	return len(importanceRank)
}

// Valid reports whether i is one of the known levels.
func (i Importance) Valid() bool {
	_, ok := importanceRank[i]
	return ok
}

// Importances returns all levels in sort order.
func Importances() []Importance {
	return []Importance{ImportanceHigh, ImportanceMedium, ImportanceLow}
}

// ParseImportance parses an importance level.
// Accepts full names in any case and the shorthands h, m, l.
func ParseImportance(s string) (Importance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return ImportanceHigh, nil
	case "medium", "med", "m":
		return ImportanceMedium, nil
	case "low", "l":
		return ImportanceLow, nil
	}
	return "", fmt.Errorf("%w %q: must be one of high, medium, low", ErrInvalidImportance, s)
}

// Task represents one to-do item.
type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"` // nil is distinct from ""
	Importance  Importance `json:"importance"`
}

// DescriptionText returns the description, or "" when absent.
func (t *Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// TaskList is an ordered sequence of tasks, sorted by importance.
type TaskList []Task

// Len returns the number of tasks in the list.
func (l TaskList) Len() int {
	return len(l)
}

// Clone returns a shallow copy of the list.
// Description pointers are shared; tasks are never mutated in place.
func (l TaskList) Clone() TaskList {
	if l == nil {
		return TaskList{}
	}
	out := make(TaskList, len(l))
	copy(out, l)
	return out
}

// Find returns the task with the given ID, or nil if none matches.
func (l TaskList) Find(id string) *Task {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}

// StringPtr returns a pointer to s. Handy for optional descriptions.
func StringPtr(s string) *string {
	return &s
}
