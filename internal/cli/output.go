package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/jacksmith/todo/internal/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Bold returns s in bold if colors are enabled.
func Bold(s string) string { return paint(colorBold, s) }

// Gray returns s in gray if colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// ImportanceLabel returns "[high]", "[medium]" or "[low]", colored by level.
func ImportanceLabel(imp model.Importance) string {
	label := "[" + string(imp) + "]"
	switch imp {
	case model.ImportanceHigh:
		return paint(colorRed, label)
	case model.ImportanceMedium:
		return paint(colorYellow, label)
	case model.ImportanceLow:
		return paint(colorGray, label)
	}
	return label
}

// DefaultMaxNameWidth is the default maximum visible width for name columns.
const DefaultMaxNameWidth = 40

// DefaultMaxDescriptionWidth is the default maximum visible width for description columns.
const DefaultMaxDescriptionWidth = 50

// ellipsis marks truncated cells.
const ellipsis = "..."

// Table formats columnar output with automatic column width calculation.
// Widths are measured in terminal cells, ignoring escape codes.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{maxWidths: make(map[int]int)}
}

// SetMaxWidth caps the visible width of a column; longer cells are truncated
// with "...".
func (t *Table) SetMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	// Expand colWidths if needed
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		// Measure the truncated cell, not the raw one
		col = t.fit(i, col)
		if w := xansi.StringWidth(col); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, cols)
}

// Len returns the number of rows added.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w with columns separated by two spaces.
// Trailing whitespace is trimmed from every line.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		var b strings.Builder
		for i, col := range row {
			col = t.fit(i, col)
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(col)
			// Pad all but the last column
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", t.colWidths[i]-xansi.StringWidth(col)))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

// fit truncates col to the column's max width, if one is set.
func (t *Table) fit(i int, col string) string {
	if maxW, ok := t.maxWidths[i]; ok {
		return Truncate(col, maxW)
	}
	return col
}

// Truncate returns s cut to maxWidth terminal cells, with "..." counted
// within the limit. Escape codes are preserved.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(ellipsis) {
		return xansi.Truncate(s, maxWidth, "")
	}
	return xansi.Truncate(s, maxWidth, ellipsis)
}

// FirstLine returns the first line of s, marking dropped lines with "...".
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[:i], "\r") + ellipsis
	}
	return s
}
