package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentic-research/locus/internal/widget"
)

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	model Model
}

// NewTestHelper creates a test helper around a loaded widget
func NewTestHelper(w *widget.Widget) *TestHelper {
	return &TestHelper{model: NewModel(w)}
}

// SendKey simulates a key press. Returned commands are run synchronously
// unless they quit.
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	return h.send(tea.KeyMsg{Type: keyType})
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	return h.send(tea.WindowSizeMsg{Width: width, Height: height})
}

func (h *TestHelper) send(msg tea.Msg) *TestHelper {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	if cmd == nil {
		return h
	}
	next := cmd()
	if _, quit := next.(tea.QuitMsg); quit {
		return h
	}
	return h.send(next)
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// GetFocusedPane returns the currently focused pane
func (h *TestHelper) GetFocusedPane() Pane {
	return h.model.focus
}

// GetCursor returns the cursor of the focused pane
func (h *TestHelper) GetCursor() int {
	return h.model.cursor[h.model.focus]
}

// GetStatus returns the status line
func (h *TestHelper) GetStatus() string {
	return h.model.status
}
