package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jacksmith/todo/internal/model"
)

type formField int

const (
	fieldName formField = iota
	fieldDescription
	fieldImportance
	fieldSubmit
	fieldCount
)

// form holds the transient state of the "New task" modal.
// It never touches the task list; the app submits its values to the manager.
type form struct {
	keys formKeyMap

	name        textinput.Model
	description textarea.Model
	importance  model.Importance
	defaultImp  model.Importance
	focus       formField
	err         string
}

func newForm(defaultImp model.Importance) form {
	name := textinput.New()
	name.Placeholder = "Task name"
	name.CharLimit = 200
	name.Width = 40

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.ShowLineNumbers = false
	desc.CharLimit = 0
	desc.SetWidth(42)
	desc.SetHeight(3)

	return form{
		keys:        newFormKeyMap(),
		name:        name,
		description: desc,
		importance:  defaultImp,
		defaultImp:  defaultImp,
	}
}

// open focuses the name field. A draft left by a cancelled form is kept;
// fields are only cleared after a successful add.
func (f *form) open() tea.Cmd {
	f.err = ""
	return f.setFocus(fieldName)
}

// reset empties every field and restores the default importance.
func (f *form) reset() {
	f.name.Reset()
	f.description.Reset()
	f.importance = f.defaultImp
	f.err = ""
}

// values returns the submitted name, description and importance.
// An empty description is reported as absent.
func (f *form) values() (string, *string, model.Importance) {
	var desc *string
	if d := strings.TrimSpace(f.description.Value()); d != "" {
		desc = &d
	}
	return f.name.Value(), desc, f.importance
}

func (f *form) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.name.Blur()
	f.description.Blur()
	switch field {
	case fieldName:
		return f.name.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

// shiftImportance moves the importance selection by delta places in the
// high..low ordering, clamped at the ends.
func (f *form) shiftImportance(delta int) {
	levels := model.Importances()
	i := f.importance.Rank() + delta
	if i < 0 {
		i = 0
	}
	if i >= len(levels) {
		i = len(levels) - 1
	}
	f.importance = levels[i]
}

// formAction tells the app what the form wants after a key press.
type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

func (f *form) update(msg tea.KeyMsg) (formAction, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Cancel):
		return formCancel, nil
	case key.Matches(msg, f.keys.Save):
		return formSubmit, nil
	case key.Matches(msg, f.keys.Next):
		return formNone, f.setFocus((f.focus + 1) % fieldCount)
	case key.Matches(msg, f.keys.Prev):
		return formNone, f.setFocus((f.focus + fieldCount - 1) % fieldCount)
	}

	switch f.focus {
	case fieldName:
		if key.Matches(msg, f.keys.Submit) {
			return formSubmit, nil
		}
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		if f.err != "" && f.name.Value() != "" {
			f.err = ""
		}
		return formNone, cmd
	case fieldDescription:
		var cmd tea.Cmd
		f.description, cmd = f.description.Update(msg)
		return formNone, cmd
	case fieldImportance:
		switch {
		case key.Matches(msg, f.keys.Left):
			// Left is toward low.
			f.shiftImportance(1)
		case key.Matches(msg, f.keys.Right):
			f.shiftImportance(-1)
		case key.Matches(msg, f.keys.Submit):
			return formSubmit, nil
		}
	case fieldSubmit:
		if key.Matches(msg, f.keys.Submit) {
			return formSubmit, nil
		}
	}
	return formNone, nil
}

func (f *form) label(field formField, text string) string {
	if f.focus == field {
		return focusedLabel.Render(text)
	}
	return labelStyle.Render(text)
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("New task"))
	b.WriteString("\n")

	b.WriteString(f.label(fieldName, "Name"))
	b.WriteString("\n")
	b.WriteString(f.name.View())
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(errorStyle.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(f.label(fieldDescription, "Description"))
	b.WriteString("\n")
	b.WriteString(f.description.View())
	b.WriteString("\n\n")

	b.WriteString(f.label(fieldImportance, "Importance"))
	b.WriteString("\n")
	// Shown low to high, left to right.
	levels := model.Importances()
	var choices []string
	for i := len(levels) - 1; i >= 0; i-- {
		style := choiceStyle
		if levels[i] == f.importance {
			style = activeChoiceStyle
		}
		choices = append(choices, style.Render(capitalize(string(levels[i]))))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, choices...))
	b.WriteString("\n\n")

	button := buttonStyle
	if f.focus == fieldSubmit {
		button = focusedButtonStyle
	}
	b.WriteString(button.Render("Add task"))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab next • ←/→ importance • ctrl+s add • esc cancel"))

	return modalStyle.Render(b.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
