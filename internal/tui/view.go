package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/markers"
)

const listWidth = 28

// View renders the entire UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("locus [%s]", m.state.PanelLabel)))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	mapW, mapH := m.mapSize()
	grid := renderGrid(m.state.Markers, m.widget.Settings().Bounds, mapW, mapH)
	mapPane := paneStyle.Render(titleStyle.Render(fmt.Sprintf("Map (%d markers)", len(m.state.Markers))) + "\n" + grid)

	if m.state.PanelShown {
		lists := lipgloss.JoinVertical(lipgloss.Left,
			m.renderList(AvailablePane, "Available"),
			m.renderList(ActivePane, "Active"),
		)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lists, mapPane))
	} else {
		b.WriteString(mapPane)
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderList(p Pane, title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	rows := m.rows[p]
	if len(rows) == 0 {
		b.WriteString("\n" + statusStyle.Render("(empty)"))
	}
	for i, r := range rows {
		line := r.Name
		if r.Group {
			line = "▾ " + line
		}
		if r.Nested {
			line = "  " + line
		}
		switch {
		case p == m.focus && i == m.cursor[p]:
			line = selectedStyle.Render("> " + line)
		case r.Nested:
			line = childStyle.Render("  " + line)
		default:
			line = "  " + line
		}
		b.WriteString("\n" + line)
	}

	style := paneStyle
	if p == m.focus {
		style = activePaneStyle
	}
	return style.Width(listWidth).Render(b.String())
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return statusStyle.Render(strings.Join(parts, " • "))
}

func (m Model) mapSize() (int, int) {
	w := m.width - 6
	if m.state.PanelShown {
		w -= listWidth + 4
	}
	h := m.height - 8
	return max(w, 10), max(h, 5)
}

// renderGrid plots markers on a w×h character grid spanning b. North is up.
// Markers outside b are clamped to the edge.
func renderGrid(ms []api.MarkerView, b markers.Bounds, w, h int) string {
	cells := make([][]rune, h)
	for y := range cells {
		cells[y] = []rune(strings.Repeat("·", w))
	}

	latSpan := b.LatMax - b.LatMin
	lngSpan := b.LngMax - b.LngMin
	for _, mk := range ms {
		x, y := 0, 0
		if lngSpan > 0 {
			x = int((mk.Lng - b.LngMin) / lngSpan * float64(w-1))
		}
		if latSpan > 0 {
			y = int((b.LatMax - mk.Lat) / latSpan * float64(h-1))
		}
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		cells[y][x] = markerRune(mk.Name)
	}

	lines := make([]string, h)
	for y, row := range cells {
		var lb strings.Builder
		for _, r := range row {
			if r == '·' {
				lb.WriteRune(r)
				continue
			}
			lb.WriteString(markerStyle.Render(string(r)))
		}
		lines[y] = lb.String()
	}
	return strings.Join(lines, "\n")
}

func markerRune(name string) rune {
	for _, r := range name {
		return r
	}
	return '●'
}
