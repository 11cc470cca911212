package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors.
const (
	colorAccent  = lipgloss.Color("#6c63ff")
	colorMuted   = lipgloss.Color("244")
	colorError   = lipgloss.Color("196")
	colorSuccess = lipgloss.Color("42")
)

// Shared styles.
//
//nolint:gochecknoglobals // Lip Gloss styles are immutable values shared across views.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	ValueStyle    = lipgloss.NewStyle().Bold(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(colorError)
	SuccessStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	SelectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	PromptStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)

// Table styles.
//
//nolint:gochecknoglobals // Lip Gloss styles are immutable values shared across views.
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorMuted)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)
