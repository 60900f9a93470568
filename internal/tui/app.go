// Package tui is the interactive terminal screen for todo: the task list,
// a modal "New task" form, and delete-on-keypress in place of a swipe.
//
// All list state lives in the ops.Manager; this package only holds form
// fields, modal visibility and the cursor.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	headerLines   = 3
	footerLines   = 2
)

// taskItem adapts a model.Task to list.Item.
type taskItem struct {
	task model.Task
}

func (i taskItem) FilterValue() string { return i.task.Name }

// taskDelegate renders a task as a name line with its importance badge and
// a muted description line.
type taskDelegate struct{}

func (d taskDelegate) Height() int                             { return 2 }
func (d taskDelegate) Spacing() int                            { return 1 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	width := m.Width() - 4
	if width < 10 {
		width = 10
	}

	cursor := "  "
	name := nameStyle.Render(xansi.Truncate(it.task.Name, width-12, "…"))
	if index == m.Index() {
		cursor = selectedStyle.Render("> ")
		name = selectedStyle.Render(xansi.Truncate(it.task.Name, width-12, "…"))
	}
	desc := cli.FirstLine(it.task.DescriptionText())
	desc = descriptionStyle.Render(xansi.Truncate(desc, width, "…"))

	fmt.Fprintf(w, "%s%s %s\n  %s", cursor, name, badge(it.task.Importance), desc)
}

// Model is the bubbletea model for the task screen.
type Model struct {
	manager *ops.Manager
	keys    listKeyMap
	list    list.Model
	form    form

	modal    bool
	status   string
	width    int
	height   int
	quitting bool
}

// New returns a Model showing the manager's current list.
func New(m *ops.Manager) Model {
	l := list.New(nil, taskDelegate{}, defaultWidth, defaultHeight-headerLines-footerLines)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	tm := Model{
		manager: m,
		keys:    newListKeyMap(),
		list:    l,
		form:    newForm(m.DefaultImportance()),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	tm.refresh()
	return tm
}

// Run starts the screen and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m *ops.Manager, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(m), opts...).Run()
	return err
}

// refresh reloads the list items from the manager, keeping the cursor in range.
func (m *Model) refresh() {
	tasks := m.manager.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, max(1, msg.Height-headerLines-footerLines))
		return m, nil

	case tea.KeyMsg:
		if m.modal {
			return m.updateForm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Add):
			m.modal = true
			m.status = ""
			return m, m.form.open()
		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.form.update(msg)
	switch action {
	case formCancel:
		m.modal = false
		return m, nil
	case formSubmit:
		name, desc, imp := m.form.values()
		task, err := m.manager.Add(name, desc, imp)
		if err != nil {
			m.form.err = cli.UserMessage(err)
			return m, m.form.setFocus(fieldName)
		}
		m.form.reset()
		m.modal = false
		m.refresh()
		m.selectTask(task.ID)
		m.status = "Added " + task.Name
		return m, nil
	}
	return m, cmd
}

// deleteSelected removes the task under the cursor.
// The cursor may point at a task that is already gone; that is a no-op.
func (m *Model) deleteSelected() {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return
	}
	if m.manager.Remove(it.task.ID) {
		m.status = "Deleted " + it.task.Name
	}
	m.refresh()
}

func (m *Model) selectTask(id string) {
	for i, item := range m.list.Items() {
		if it, ok := item.(taskItem); ok && it.task.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if len(m.list.Items()) == 0 {
		body = emptyStyle.Render("No tasks yet. Press + to add one.")
	} else {
		body = m.list.View()
	}

	footer := statusStyle.Render(m.footerText())
	screen := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("To do"), "", body, footer)

	if m.modal {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.view())
	}
	return screen
}

func (m Model) footerText() string {
	help := helpStyle.Render(strings.Join([]string{
		"↑/↓ move",
		m.keys.Add.Help().Key + " " + m.keys.Add.Help().Desc,
		m.keys.Delete.Help().Key + " " + m.keys.Delete.Help().Desc,
		m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc,
	}, " • "))
	if m.status != "" {
		return m.status + "  " + help
	}
	return help
}
