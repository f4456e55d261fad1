package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the phosphor palette for one color scheme. Everything on
// screen is a shade of a single tint, the way the hardware would have
// rendered it.
type Theme struct {
	Screen lipgloss.Style // transcript body
	Title  lipgloss.Style // banner headline
	Dim    lipgloss.Style // banner subtitle, help footer
	Prompt lipgloss.Style // active prompt and echoed commands
}

func themeFor(scheme string) Theme {
	var tint lipgloss.Color
	switch scheme {
	case "amber":
		tint = lipgloss.Color("#FFB000")
	case "white":
		tint = lipgloss.Color("#F2F2F2")
	default:
		tint = lipgloss.Color("#33FF33")
	}
	return Theme{
		Screen: lipgloss.NewStyle().Foreground(tint),
		Title:  lipgloss.NewStyle().Foreground(tint).Bold(true),
		Dim:    lipgloss.NewStyle().Foreground(tint).Faint(true),
		Prompt: lipgloss.NewStyle().Foreground(tint).Bold(true),
	}
}
