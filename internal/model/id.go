package model

import (
	"strings"

	"github.com/google/uuid"
)

// ShortIDLength is the number of leading ID characters shown in list views.
const ShortIDLength = 8

// NewID returns a fresh unique task identifier.
func NewID() string {
	return uuid.NewString()
}

// ShortID returns the leading characters of id used in list views.
// IDs shorter than ShortIDLength are returned unchanged.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// NormalizeID lowercases and trims an ID typed by a user.
func NormalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsUUID reports whether id is a canonical UUID.
// Tasks written by older clients carry timestamp IDs instead.
func IsUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
