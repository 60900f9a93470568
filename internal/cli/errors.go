// Package cli provides CLI infrastructure for todo.
package cli

import (
	"errors"

	"github.com/jacksmith/todo/internal/model"
)

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}

// UserMessage returns the short message shown next to a form field.
// Validation errors get a sentence; anything else falls back to err.Error().
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrEmptyName):
		return "Task name is required"
	case errors.Is(err, model.ErrInvalidName):
		return "Task name contains invalid characters"
	case errors.Is(err, model.ErrInvalidImportance):
		return "Pick an importance: high, medium or low"
	}
	return err.Error()
}
