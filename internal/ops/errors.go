package ops

import (
	"fmt"
	"strings"
)

// NotFoundError indicates that no task matches an ID or prefix.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

// AmbiguousIDError indicates that an ID prefix matches more than one task.
type AmbiguousIDError struct {
	Ref     string
	Matches []string
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("ambiguous task ID %q matches: %s", e.Ref, strings.Join(e.Matches, ", "))
}
