package model

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a task is created without a name.
var ErrEmptyName = errors.New("task name is required")

// ErrInvalidName is returned for names that are not valid UTF-8.
// They cannot be stored without being altered.
var ErrInvalidName = errors.New("task name must be valid UTF-8")

// ValidationError indicates that user input was rejected.
// The list is never modified when a ValidationError is returned.
type ValidationError struct {
	Field string // the field that failed validation
	Err   error  // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CorruptStateError indicates that persisted data was present but could not
// be parsed as a task list.
type CorruptStateError struct {
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt task list: %v", e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}
