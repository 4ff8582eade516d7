package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/mread/internal/config"
)

// Styles holds the lipgloss styles used to draw a frame
type Styles struct {
	Highlighter lipgloss.Style
	Match       lipgloss.Style
	Status      lipgloss.Style
	Progress    lipgloss.Style
}

// NewStyles builds styles from the theme config
func NewStyles(theme config.ThemeConfig) Styles {
	return Styles{
		Highlighter: lipgloss.NewStyle().Background(lipgloss.Color(theme.Highlighter)),
		Match: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.MatchFg)).
			Background(lipgloss.Color(theme.MatchBg)),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.StatusBar)).
			Foreground(lipgloss.Color(theme.StatusBarText)),
		Progress: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Progress)),
	}
}
