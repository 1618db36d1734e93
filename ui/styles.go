package ui

import (
	"cmdpalette/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	brand = lipgloss.Color("99")  // purple
	frame = lipgloss.Color("240") // gray
	green = lipgloss.Color("86")
	amber = lipgloss.Color("214")
	red   = lipgloss.Color("196")
	faint = lipgloss.Color("245")

	paletteStyle = lipgloss.NewStyle().Padding(1, 2)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brand).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(brand).
			Padding(0, 1)

	// Live parse preview under the input
	parsedOKStyle      = lipgloss.NewStyle().Foreground(green)
	parsedPartialStyle = lipgloss.NewStyle().Foreground(amber)
	parsedErrorStyle   = lipgloss.NewStyle().Foreground(red)

	// Suggestion list and selected table row
	cursorStyle     = lipgloss.NewStyle().Bold(true).Foreground(green)
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	matchStyle      = lipgloss.NewStyle().Foreground(brand).Underline(true)
	describeStyle   = lipgloss.NewStyle().Foreground(faint).Italic(true)

	resultsLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(frame)
	resultsBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(frame)
	progressStyle = lipgloss.NewStyle().Foreground(faint)

	errorStyle  = lipgloss.NewStyle().Foreground(red)
	noticeStyle = lipgloss.NewStyle().Foreground(amber).Bold(true)

	// Key hints and quick actions
	keyStyle     = lipgloss.NewStyle().Foreground(brand).Bold(true)
	keyDescStyle = lipgloss.NewStyle().Foreground(faint)
)

// kindBadges tags each suggestion with where it came from.
var kindBadges = map[model.SuggestionKind]string{
	model.KindEntity:  lipgloss.NewStyle().Foreground(brand).Render("entity"),
	model.KindVerb:    lipgloss.NewStyle().Foreground(green).Render("verb"),
	model.KindCommand: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("command"),
	model.KindHistory: lipgloss.NewStyle().Foreground(amber).Render("recent"),
}
