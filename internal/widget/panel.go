package widget

// Panel is the show/hide state of the list panel. The zero value is hidden.
type Panel struct {
	Shown bool
}

// Label is the toggle button text: "+" while hidden, "-" while shown.
func (p Panel) Label() string {
	if p.Shown {
		return "-"
	}
	return "+"
}

// Toggle alternates the panel between shown and hidden.
func (p *Panel) Toggle() {
	p.Shown = !p.Shown
}
