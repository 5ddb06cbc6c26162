package report

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the renderers.
type Styles struct {
	Title     lipgloss.Style
	Interface lipgloss.Style
	Name      lipgloss.Style
	Property  lipgloss.Style
	Value     lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles builds the default palette on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		Interface: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB")),
		Name: r.NewStyle().
			Foreground(lipgloss.Color("#98FB98")),
		Property: r.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Value: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("#666666")),
	}
}
