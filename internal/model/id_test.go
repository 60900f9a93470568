package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("returns a parseable uuid", func(t *testing.T) {
		id := NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.True(t, IsUUID(id))
	})

	t.Run("ids are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := NewID()
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})
}

func TestShortID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "uuid is truncated", input: "3f2a9c1e-7b4d-4e2a-9f1c-0123456789ab", want: "3f2a9c1e"},
		{name: "timestamp id is truncated", input: "1718031200123", want: "17180312"},
		{name: "short id unchanged", input: "abc", want: "abc"},
		{name: "exact length unchanged", input: "abcdefgh", want: "abcdefgh"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortID(tt.input))
		})
	}
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "3f2a9c1e", NormalizeID("  3F2A9C1E "))
	assert.Equal(t, "1718031200123", NormalizeID("1718031200123"))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("3f2a9c1e-7b4d-4e2a-9f1c-0123456789ab"))
	assert.False(t, IsUUID("1718031200123"))
	assert.False(t, IsUUID(""))
}
