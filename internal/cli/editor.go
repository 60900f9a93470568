package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when neither VISUAL nor EDITOR is set.
var ErrNoEditor = errors.New("EDITOR not set; set it or pass --description instead of --edit")

// descriptionTemplate is appended below the initial text when editing.
const descriptionTemplate = `
# Write the task description above.
# Lines starting with '#' are ignored. Leave empty for no description.
`

// EditDescription opens initial in $VISUAL or $EDITOR and returns the text the
// user saved, with comment lines removed and surrounding blank lines trimmed.
// An empty result means the user wants no description.
func EditDescription(initial string) (string, error) {
	editor := editorCommand()
	if editor == "" {
		return "", ErrNoEditor
	}

	f, err := os.CreateTemp("", "todo-description-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial + "\n" + descriptionTemplate); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := launchEditor(editor, path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return stripComments(string(data)), nil
}

// stripComments drops '#' lines and trims surrounding blank lines.
func stripComments(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t\r"))
	}
	return strings.Trim(strings.Join(kept, "\n"), "\n")
}

// editorCommand returns the editor command from environment.
// VISUAL wins over EDITOR.
func editorCommand() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// launchEditor runs the editor on path, attached to the terminal.
// The command may carry arguments, e.g. "code --wait".
func launchEditor(editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
