// Package tui is an interactive terminal view over a pantry store.
//
// Keys are bound to named actions (save, quit, add_item, remove_item) the
// same way buttons of a form are bound to callbacks. The store knows
// nothing about the view.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Action names.
const (
	ActionSave       = "save"
	ActionQuit       = "quit"
	ActionAddItem    = "add_item"
	ActionRemoveItem = "remove_item"
	ActionCursorUp   = "cursor_up"
	ActionCursorDown = "cursor_down"
)

// Action is a callback bound to one or more keys.
type Action func(m *Model) tea.Cmd

type mode int

const (
	modeBrowse mode = iota
	modePrompt
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model for the pantry view.
type Model struct {
	store   *pantry.Store
	actions map[string]Action
	keys    map[string]string // key -> action name

	input  textinput.Model
	mode   mode
	cursor int
	status string
	err    error
}

// New returns a view over an open store with the default key bindings.
func New(store *pantry.Store) Model {
	input := textinput.New()
	input.Placeholder = "name amount [units]"
	input.Prompt = "add> "
	input.CharLimit = 128

	m := Model{
		store:   store,
		actions: make(map[string]Action),
		keys:    make(map[string]string),
		input:   input,
	}
	m.BindActions(map[string]Action{
		ActionSave:       (*Model).save,
		ActionQuit:       (*Model).quit,
		ActionAddItem:    (*Model).addItem,
		ActionRemoveItem: (*Model).removeItem,
		ActionCursorUp:   (*Model).cursorUp,
		ActionCursorDown: (*Model).cursorDown,
	})
	m.BindKeys(map[string]string{
		"s":      ActionSave,
		"ctrl+s": ActionSave,
		"q":      ActionQuit,
		"ctrl+c": ActionQuit,
		"a":      ActionAddItem,
		"d":      ActionRemoveItem,
		"up":     ActionCursorUp,
		"k":      ActionCursorUp,
		"down":   ActionCursorDown,
		"j":      ActionCursorDown,
	})
	return m
}

// BindActions registers or replaces actions by name.
func (m *Model) BindActions(actions map[string]Action) {
	for name, fn := range actions {
		m.actions[name] = fn
	}
}

// BindKeys maps key names, as reported by tea.KeyMsg.String, to action
// names. Keys bound to unknown actions are ignored when pressed.
func (m *Model) BindKeys(bindings map[string]string) {
	for key, action := range bindings {
		m.keys[key] = action
	}
}

// Run shows the view until the user quits and returns the final model.
// It does not save; the caller decides what to do with unsaved changes.
func Run(store *pantry.Store, in io.Reader, out io.Writer) (Model, error) {
	p := tea.NewProgram(New(store), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return Model{}, fmt.Errorf("run pantry view: %w", err)
	}
	return final.(Model), nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if m.mode == modePrompt {
		if ok {
			return m.updatePrompt(key)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if !ok {
		return m, nil
	}

	action, ok := m.actions[m.keys[key.String()]]
	if !ok {
		return m, nil
	}
	cmd := action(&m)
	return m, cmd
}

func (m Model) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m, m.quit()
	case tea.KeyEsc:
		m.closePrompt()
		m.status = "add cancelled"
		return m, nil
	case tea.KeyEnter:
		m.submit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// submit adds the prompt entry to the store. Bad input keeps the prompt
// open so it can be corrected.
func (m *Model) submit() {
	name, amount, units, err := parseEntry(m.input.Value())
	if err != nil {
		m.err = err
		return
	}

	count := m.store.Add(name, amount, units)
	for i, item := range m.store.Items() {
		if item.Name == name {
			m.cursor = i
			m.status = fmt.Sprintf("added %s (%d items)", item, count)
			break
		}
	}
	m.err = nil
	m.closePrompt()
}

func (m *Model) closePrompt() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) save() tea.Cmd {
	if err := m.store.Save(); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.status = fmt.Sprintf("saved %d items", m.store.Count())
	return nil
}

func (m *Model) quit() tea.Cmd {
	return tea.Quit
}

func (m *Model) addItem() tea.Cmd {
	m.mode = modePrompt
	m.err = nil
	m.input.Reset()
	return m.input.Focus()
}

func (m *Model) removeItem() tea.Cmd {
	items := m.store.Items()
	if len(items) == 0 {
		m.status = "nothing to remove"
		return nil
	}
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	removed := items[m.cursor]
	count, err := m.store.Delete(m.cursor)
	if err != nil {
		m.err = err
		return nil
	}
	if m.cursor >= count && count > 0 {
		m.cursor = count - 1
	}
	if count == 0 {
		m.cursor = 0
	}
	m.err = nil
	m.status = "removed " + removed.Name
	return nil
}

func (m *Model) cursorUp() tea.Cmd {
	if m.cursor > 0 {
		m.cursor--
	}
	return nil
}

func (m *Model) cursorDown() tea.Cmd {
	if m.cursor < m.store.Count()-1 {
		m.cursor++
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := "Pantry: " + m.store.Name()
	if m.store.Dirty() {
		title += " *"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	items := m.store.Items()
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  (empty)"))
		b.WriteString("\n")
	}
	for i, item := range items {
		b.WriteString(renderRow(item, i == m.cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.mode == modePrompt {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.mode == modePrompt {
		b.WriteString(dimStyle.Render("enter add  esc cancel"))
	} else {
		b.WriteString(dimStyle.Render("a add  d remove  s save  q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func renderRow(item types.Item, selected bool) string {
	if selected {
		return cursorStyle.Render("> " + item.String())
	}
	return "  " + item.String()
}
