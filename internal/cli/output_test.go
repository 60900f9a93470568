package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jacksmith/todo/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp("", "test")
	if err != nil {
		t.Skip("cannot create temp file")
	}
	defer os.Remove(f.Name())
	defer f.Close()

	assert.False(t, IsTerminal(f), "temp file should not be a terminal")

	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf), "bytes.Buffer should not be a terminal")
}

func TestImportanceLabel(t *testing.T) {
	SetColorEnabled(true)
	defer SetColorEnabled(false)

	assert.Equal(t, "\033[31m[high]\033[0m", ImportanceLabel(model.ImportanceHigh))
	assert.Equal(t, "\033[33m[medium]\033[0m", ImportanceLabel(model.ImportanceMedium))
	assert.Equal(t, "\033[90m[low]\033[0m", ImportanceLabel(model.ImportanceLow))
	assert.Equal(t, "[urgent]", ImportanceLabel("urgent"))
	assert.Equal(t, "\033[1mx\033[0m", Bold("x"))
	assert.True(t, ColorEnabled())

	SetColorEnabled(false)
	assert.Equal(t, "[high]", ImportanceLabel(model.ImportanceHigh))
	assert.Equal(t, "x", Gray("x"))
	assert.False(t, ColorEnabled())
}

func TestTable(t *testing.T) {
	t.Run("aligns columns and trims trailing space", func(t *testing.T) {
		table := NewTable()
		table.AddRow("a1", "[high]", "Pay rent", "")
		table.AddRow("b22", "[low]", "Buy milk", "2 liters")

		var buf bytes.Buffer
		table.Render(&buf)

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		assert.Equal(t, []string{
			"a1   [high]  Pay rent",
			"b22  [low]   Buy milk  2 liters",
		}, lines)
		assert.Equal(t, 2, table.Len())
	})

	t.Run("escape codes do not count toward width", func(t *testing.T) {
		SetColorEnabled(true)
		defer SetColorEnabled(false)

		table := NewTable()
		table.AddRow(ImportanceLabel(model.ImportanceHigh), "x")
		table.AddRow("[medium]", "y")

		var buf bytes.Buffer
		table.Render(&buf)
		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		assert.Equal(t, "\033[31m[high]\033[0m    x", lines[0])
		assert.Equal(t, "[medium]  y", lines[1])
	})

	t.Run("max width truncates cells", func(t *testing.T) {
		table := NewTable()
		table.SetMaxWidth(0, 8)
		table.AddRow("a very long task name", "end")

		var buf bytes.Buffer
		table.Render(&buf)
		assert.Equal(t, "a ver...  end\n", buf.String())
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.input, tt.width), func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.width))
		})
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one line", FirstLine("one line"))
	assert.Equal(t, "first...", FirstLine("first\nsecond"))
	assert.Equal(t, "first...", FirstLine("first\r\nsecond"))
}
