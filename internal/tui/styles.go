package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jacksmith/todo/internal/model"
)

var (
	inkColor    = lipgloss.Color("#171A21")
	mutedColor  = lipgloss.Color("243")
	errorColor  = lipgloss.Color("#E85D75")
	accentColor = lipgloss.Color("#6DC7A0")

	// Badge backgrounds per importance level.
	importanceColors = map[model.Importance]lipgloss.Color{
		model.ImportanceHigh:   lipgloss.Color("#6DC7A0"),
		model.ImportanceMedium: lipgloss.Color("#9EEBC8"),
		model.ImportanceLow:    lipgloss.Color("#DAFFEF"),
	}

	titleStyle       = lipgloss.NewStyle().Bold(true).Padding(1, 2, 0, 2)
	nameStyle        = lipgloss.NewStyle().Bold(true)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	descriptionStyle = lipgloss.NewStyle().Foreground(mutedColor)
	statusStyle      = lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 2)
	errorStyle       = lipgloss.NewStyle().Foreground(errorColor)
	helpStyle        = lipgloss.NewStyle().Faint(true)
	emptyStyle       = lipgloss.NewStyle().Foreground(mutedColor).Padding(1, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	focusedLabel    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)

	choiceStyle       = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	activeChoiceStyle = choiceStyle.BorderForeground(accentColor).Bold(true)

	buttonStyle        = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("240")).Foreground(lipgloss.Color("255"))
	focusedButtonStyle = buttonStyle.Background(accentColor).Foreground(inkColor)
)

// badge renders the importance label on its level's background.
func badge(imp model.Importance) string {
	style := lipgloss.NewStyle().Padding(0, 1).Foreground(inkColor)
	if c, ok := importanceColors[imp]; ok {
		style = style.Background(c)
	}
	return style.Render(string(imp))
}
