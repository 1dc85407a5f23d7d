package tui

import "github.com/charmbracelet/lipgloss"

const columnWidth = 30

type Styles struct {
	Title    lipgloss.Style
	Column   lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Dragged  lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Column:   lipgloss.NewStyle().Width(columnWidth-2).Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Card:     lipgloss.NewStyle().Width(columnWidth - 6).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
		Selected: lipgloss.NewStyle().Width(columnWidth - 6).Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("205")),
		Dragged:  lipgloss.NewStyle().Width(columnWidth - 6).Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("214")).Faint(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

// stageHeader pinta o nome da etapa com a cor dela.
func stageHeader(name, color string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(name)
}
