package tui

import "github.com/charmbracelet/lipgloss"

var (
	Accent      = lipgloss.Color("#8BC34A")
	Primary     = lipgloss.Color("#2196F3")
	Warning     = lipgloss.Color("#FFC107")
	Destructive = lipgloss.Color("#e53935")
	Muted       = lipgloss.Color("#6b7280")
)

// Styles groups the lipgloss styles the views use.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Score   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Box     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Header:  lipgloss.NewStyle().Bold(true).Underline(true),
		Score:   lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("#ffffff")),
		Label:   lipgloss.NewStyle().Width(24),
		Muted:   lipgloss.NewStyle().Foreground(Muted),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(Destructive),
		Success: lipgloss.NewStyle().Foreground(Accent),
		Box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// gradeColor picks the score banner background for a letter grade.
func gradeColor(letter string) lipgloss.Color {
	switch letter {
	case "A+", "A":
		return Accent
	case "B":
		return Primary
	case "C":
		return Warning
	default:
		return Destructive
	}
}
