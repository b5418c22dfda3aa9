package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
	"github.com/mesh-intelligence/pantry/pkg/shelf"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newStore(t *testing.T, items ...types.Item) *pantry.Store {
	t.Helper()
	sh, err := shelf.New(types.Config{Backend: types.BackendJSONL, DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	s, err := pantry.Open(sh, "pantry")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	for _, item := range items {
		s.Add(item.Name, item.Amount, item.Units)
	}
	return s
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_AddItemThroughPrompt(t *testing.T) {
	s := newStore(t)
	m := New(s)

	m, _ = press(t, m, "a")
	require.Equal(t, modePrompt, m.mode)

	m, _ = press(t, m, "Flour 2 cups", "enter")
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "Flour: 2 cups", s.Render())
	assert.True(t, s.Dirty())
	assert.Contains(t, m.status, "added Flour: 2 cups")
}

func TestModel_AddMergesAndMovesCursor(t *testing.T) {
	s := newStore(t,
		types.Item{Name: "Rice", Amount: 5, Units: "lb"},
		types.Item{Name: "Beans", Amount: 2, Units: "lb"},
	)
	m := New(s)
	m, _ = press(t, m, "down")
	require.Equal(t, 1, m.cursor)

	m, _ = press(t, m, "a")
	m.input.SetValue("Rice 1 kg")
	m, _ = press(t, m, "enter")

	assert.Equal(t, "Rice: 6 lb\nBeans: 2 lb", s.Render())
	assert.Equal(t, 0, m.cursor, "cursor follows the merged item")
}

func TestModel_BadEntryKeepsPrompt(t *testing.T) {
	s := newStore(t)
	m := New(s)

	m, _ = press(t, m, "a")
	m.input.SetValue("Flour")
	m, _ = press(t, m, "enter")

	assert.Equal(t, modePrompt, m.mode)
	assert.ErrorIs(t, m.err, errEntry)
	assert.Equal(t, 0, s.Count())
}

func TestModel_NonFiniteEntryKeepsSaveWorking(t *testing.T) {
	s := newStore(t, types.Item{Name: "Beans", Amount: 2, Units: "lb"})
	m := New(s)

	m, _ = press(t, m, "a")
	m.input.SetValue("Rice NaN lb")
	m, _ = press(t, m, "enter")
	assert.Equal(t, modePrompt, m.mode)
	assert.ErrorIs(t, m.err, errEntry)

	m, _ = press(t, m, "esc", "s")
	require.NoError(t, m.err)
	assert.False(t, s.Dirty())
	assert.Equal(t, "Beans: 2 lb", s.Render())
}

func TestModel_EscCancelsPrompt(t *testing.T) {
	s := newStore(t)
	m := New(s)

	m, _ = press(t, m, "a", "Tea 1 box", "esc")

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, m.input.Value())
}

func TestModel_PromptSwallowsActionKeys(t *testing.T) {
	s := newStore(t, types.Item{Name: "Rice", Amount: 5, Units: "lb"})
	m := New(s)

	m, _ = press(t, m, "a", "q", "d")

	assert.Equal(t, modePrompt, m.mode, "q typed into the prompt must not quit")
	assert.Equal(t, 1, s.Count(), "d typed into the prompt must not remove")
	assert.Equal(t, "qd", m.input.Value())
}

func TestModel_RemoveItem(t *testing.T) {
	s := newStore(t,
		types.Item{Name: "A", Amount: 1, Units: "x"},
		types.Item{Name: "B", Amount: 1, Units: "x"},
		types.Item{Name: "C", Amount: 1, Units: "x"},
	)
	m := New(s)

	m, _ = press(t, m, "j", "j", "d")
	assert.Equal(t, "A: 1 x\nB: 1 x", s.Render())
	assert.Equal(t, 1, m.cursor, "cursor clamps to the new last row")
	assert.Equal(t, "removed C", m.status)

	m, _ = press(t, m, "k", "d", "d")
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, "d")
	assert.Equal(t, "nothing to remove", m.status)
}

func TestModel_CursorBounds(t *testing.T) {
	s := newStore(t,
		types.Item{Name: "A", Amount: 1, Units: "x"},
		types.Item{Name: "B", Amount: 1, Units: "x"},
	)
	m := New(s)

	m, _ = press(t, m, "up")
	assert.Equal(t, 0, m.cursor)
	m, _ = press(t, m, "down", "down", "down")
	assert.Equal(t, 1, m.cursor)
}

func TestModel_Save(t *testing.T) {
	s := newStore(t, types.Item{Name: "Salt", Amount: 1, Units: "kg"})
	m := New(s)
	require.True(t, s.Dirty())

	m, _ = press(t, m, "s")
	assert.False(t, s.Dirty())
	assert.Equal(t, "saved 1 items", m.status)
	assert.NoError(t, m.err)
}

func TestModel_SaveErrorShown(t *testing.T) {
	s := newStore(t)
	m := New(s)
	require.NoError(t, s.Close())

	m, _ = press(t, m, "s")
	assert.ErrorIs(t, m.err, types.ErrStoreClosed)
	assert.Contains(t, m.View(), "error:")
}

func TestModel_QuitDoesNotSave(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			s := newStore(t, types.Item{Name: "Tea", Amount: 1, Units: "box"})
			m := New(s)

			_, cmd := press(t, m, k)
			assert.True(t, isQuit(cmd))
			assert.True(t, s.Dirty())
		})
	}
}

func TestModel_CustomBinding(t *testing.T) {
	s := newStore(t)
	m := New(s)
	called := false
	m.BindActions(map[string]Action{
		"restock": func(m *Model) tea.Cmd {
			called = true
			m.store.Add("Coffee", 1, "bag")
			return nil
		},
	})
	m.BindKeys(map[string]string{"r": "restock", "x": "missing"})

	m, _ = press(t, m, "x", "r")
	assert.True(t, called)
	assert.Equal(t, "Coffee: 1 bag", s.Render())
}

func TestModel_View(t *testing.T) {
	s := newStore(t)
	m := New(s)
	assert.Contains(t, m.View(), "Pantry: pantry")
	assert.Contains(t, m.View(), "(empty)")

	s.Add("Rice", 6, "lb")
	view := m.View()
	assert.Contains(t, view, "Pantry: pantry *", "dirty marker")
	assert.Contains(t, view, "Rice: 6 lb")
	assert.Contains(t, view, "q quit")
}
