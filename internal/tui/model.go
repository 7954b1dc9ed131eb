package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/widget"
)

// Pane identifies which list has focus.
type Pane int

const (
	AvailablePane Pane = iota
	ActivePane
)

func (p Pane) collection() graph.CollectionID {
	if p == ActivePane {
		return graph.Active
	}
	return graph.Available
}

// row is one visible line of a list pane.
type row struct {
	ID     int64
	Name   string
	Group  bool
	Nested bool
}

// Model is the bubbletea model of the terminal widget.
type Model struct {
	widget *widget.Widget
	keys   KeyMap

	state  api.State
	rows   [2][]row
	cursor [2]int
	focus  Pane

	width  int
	height int
	status string
	err    error
}

// NewModel renders the widget's current state. The widget should already be loaded.
func NewModel(w *widget.Widget) Model {
	m := Model{widget: w, keys: DefaultKeyMap(), width: 100, height: 30}
	m.refresh()
	return m
}

type reloadedMsg struct{ err error }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case reloadedMsg:
		m.err = msg.err
		m.status = "reloaded"
		m.cursor = [2]int{}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		p := m.widget.Toggle()
		m.status = "panel " + p.Label()
		m.refresh()

	case key.Matches(msg, m.keys.Reload):
		w := m.widget
		return m, func() tea.Msg {
			return reloadedMsg{err: w.Reload(context.Background())}
		}
	}

	// List keys only act while the lists are visible.
	if !m.state.PanelShown {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.focus = 1 - m.focus

	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.focus] > 0 {
			m.cursor[m.focus]--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.focus] < len(m.rows[m.focus])-1 {
			m.cursor[m.focus]++
		}

	case key.Matches(msg, m.keys.Move):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		res, err := m.widget.Click(m.focus.collection(), graph.NodeID(r.ID), nil)
		m.setResult(err, func() string {
			return fmt.Sprintf("%s: %s -> %s", r.Name, res.From, res.To)
		})

	case key.Matches(msg, m.keys.Marker):
		r, ok := m.selected()
		if !ok || m.focus != ActivePane {
			return m, nil
		}
		err := m.widget.ClickMarker(graph.NodeID(r.ID))
		m.setResult(err, func() string {
			return fmt.Sprintf("%s: marker clicked", r.Name)
		})
	}
	return m, nil
}

func (m *Model) setResult(err error, ok func() string) {
	if err != nil {
		m.status = err.Error()
	} else {
		m.status = ok()
	}
	m.refresh()
}

func (m Model) selected() (row, bool) {
	rows := m.rows[m.focus]
	c := m.cursor[m.focus]
	if c < 0 || c >= len(rows) {
		return row{}, false
	}
	return rows[c], true
}

// refresh pulls a new snapshot and clamps the cursors.
func (m *Model) refresh() {
	m.state = m.widget.Snapshot()
	m.rows[AvailablePane] = flatten(m.state.Available)
	m.rows[ActivePane] = flatten(m.state.Active)
	for p := range m.rows {
		if n := len(m.rows[p]); m.cursor[p] >= n {
			m.cursor[p] = max(n-1, 0)
		}
	}
	if m.err == nil && m.state.LoadError != "" {
		m.err = fmt.Errorf("%s", m.state.LoadError)
	}
}

func flatten(views []api.NodeView) []row {
	var out []row
	for _, v := range views {
		out = append(out, row{ID: v.ID, Name: v.Name, Group: v.Group})
		for _, c := range v.Children {
			out = append(out, row{ID: c.ID, Name: c.Name, Nested: true})
		}
	}
	return out
}

// Run blocks running the terminal UI on the alternate screen.
func Run(w *widget.Widget) error {
	_, err := tea.NewProgram(NewModel(w), tea.WithAltScreen()).Run()
	return err
}
