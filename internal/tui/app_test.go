package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds msgs to m in order and returns the resulting model.
func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

// typeText sends one key press per rune, as a terminal would.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, runes(string(r)))
	}
	return m
}

func newTestManager(t *testing.T) (*ops.Manager, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	m := ops.NewManager(store)
	require.NoError(t, m.Load(context.Background()))
	return m, store
}

func TestAddTask(t *testing.T) {
	t.Run("plus opens the form", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		m := press(t, New(mgr), runes("+"))
		assert.True(t, m.modal)
		assert.Contains(t, m.View(), "New task")
	})

	t.Run("enter adds with the default importance", func(t *testing.T) {
		mgr, store := newTestManager(t)
		m := press(t, New(mgr), runes("+"))
		m = typeText(t, m, "Buy milk")
		m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		assert.False(t, m.modal)
		require.Equal(t, 1, mgr.Len())
		task := mgr.Tasks()[0]
		assert.Equal(t, "Buy milk", task.Name)
		assert.Nil(t, task.Description)
		assert.Equal(t, model.ImportanceLow, task.Importance)
		assert.Equal(t, "Added Buy milk", m.status)

		raw, ok, err := store.Get(context.Background(), ops.TasksKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Contains(t, raw, `"Buy milk"`)
	})

	t.Run("empty name shows an inline error and keeps the form", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		m := press(t, New(mgr), runes("+"), tea.KeyMsg{Type: tea.KeyEnter})

		assert.True(t, m.modal)
		assert.Equal(t, "Task name is required", m.form.err)
		assert.Contains(t, m.View(), "Task name is required")
		assert.Equal(t, 0, mgr.Len())

		m = typeText(t, m, "x")
		assert.Empty(t, m.form.err)
	})

	t.Run("whitespace name is rejected", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		m := press(t, New(mgr), runes("+"))
		m = typeText(t, m, "   ")
		m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		assert.True(t, m.modal)
		assert.Equal(t, 0, mgr.Len())
	})

	t.Run("description and importance are submitted", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		m := press(t, New(mgr), runes("+"))
		m = typeText(t, m, "Pay rent")
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		m = typeText(t, m, "before the 5th")
		m = press(t, m,
			tea.KeyMsg{Type: tea.KeyTab},
			tea.KeyMsg{Type: tea.KeyRight},
			tea.KeyMsg{Type: tea.KeyRight},
			tea.KeyMsg{Type: tea.KeyCtrlS},
		)

		require.Equal(t, 1, mgr.Len())
		task := mgr.Tasks()[0]
		assert.Equal(t, model.ImportanceHigh, task.Importance)
		require.NotNil(t, task.Description)
		assert.Equal(t, "before the 5th", *task.Description)
	})

	t.Run("importance selection is clamped", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		m := press(t, New(mgr), runes("+"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
		assert.Equal(t, model.ImportanceLow, m.form.importance)

		for i := 0; i < 5; i++ {
			m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
		}
		assert.Equal(t, model.ImportanceHigh, m.form.importance)
	})

	t.Run("escape closes without adding and keeps the draft", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		m := press(t, New(mgr), runes("+"))
		m = typeText(t, m, "Draft")
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		m = typeText(t, m, "notes")
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyRight})
		m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

		assert.False(t, m.modal)
		assert.Equal(t, 0, mgr.Len())

		m = press(t, m, runes("+"))
		assert.True(t, m.modal)
		assert.Equal(t, fieldName, m.form.focus)
		name, desc, imp := m.form.values()
		assert.Equal(t, "Draft", name)
		require.NotNil(t, desc)
		assert.Equal(t, "notes", *desc)
		assert.Equal(t, model.ImportanceMedium, imp)

		m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		require.Equal(t, 1, mgr.Len())
		assert.Equal(t, "Draft", mgr.Tasks()[0].Name)

		m = press(t, m, runes("+"))
		name, desc, imp = m.form.values()
		assert.Empty(t, name)
		assert.Nil(t, desc)
		assert.Equal(t, model.ImportanceLow, imp)
	})

	t.Run("reopening clears a stale error", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		m := press(t, New(mgr), runes("+"), tea.KeyMsg{Type: tea.KeyEnter})
		require.NotEmpty(t, m.form.err)

		m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("+"))
		assert.Empty(t, m.form.err)
	})

	t.Run("list keys are typed into the form", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		m := press(t, New(mgr), runes("+"))
		m = typeText(t, m, "and")
		m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		require.Equal(t, 1, mgr.Len())
		assert.Equal(t, "and", mgr.Tasks()[0].Name)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("removes the selected task", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		_, err := mgr.Add("Buy milk", nil, model.ImportanceLow)
		require.NoError(t, err)
		_, err = mgr.Add("Pay rent", nil, model.ImportanceHigh)
		require.NoError(t, err)

		m := press(t, New(mgr), runes("d"))

		require.Equal(t, 1, mgr.Len())
		assert.Equal(t, "Buy milk", mgr.Tasks()[0].Name)
		assert.Equal(t, "Deleted Pay rent", m.status)
	})

	t.Run("cursor stays in range after deleting the last row", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		_, err := mgr.Add("a", nil, model.ImportanceHigh)
		require.NoError(t, err)
		_, err = mgr.Add("b", nil, model.ImportanceLow)
		require.NoError(t, err)

		m := press(t, New(mgr), tea.KeyMsg{Type: tea.KeyDown}, runes("d"))
		require.Equal(t, 1, mgr.Len())
		assert.Equal(t, 0, m.list.Index())

		m = press(t, m, runes("d"))
		assert.Equal(t, 0, mgr.Len())
		assert.Contains(t, m.View(), "No tasks yet")
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		mgr, _ := newTestManager(t)
		m := press(t, New(mgr), runes("d"))
		assert.Equal(t, 0, mgr.Len())
		assert.Empty(t, m.status)
	})
}

func TestView(t *testing.T) {
	mgr, _ := newTestManager(t)
	_, err := mgr.Add("Water plants", model.StringPtr("balcony first\nthen kitchen"), model.ImportanceMedium)
	require.NoError(t, err)

	view := New(mgr).View()
	assert.Contains(t, view, "To do")
	assert.Contains(t, view, "Water plants")
	assert.Contains(t, view, "balcony first")
	assert.NotContains(t, view, "then kitchen")
}

func TestQuit(t *testing.T) {
	mgr, _ := newTestManager(t)
	_, cmd := New(mgr).Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowResize(t *testing.T) {
	mgr, _ := newTestManager(t)
	m := press(t, New(mgr), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 120, m.list.Width())
}
