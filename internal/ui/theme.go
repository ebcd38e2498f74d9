package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Accent  string
	Success string
	Danger  string

	SelectionBg   string
	SelectionText string
	Border        string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Danger)).
			Padding(0, 1),

		NoticeInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles holds the resolved lipgloss styles.
type Styles struct {
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Danger   lipgloss.Style
	Selected lipgloss.Style

	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	Notice     lipgloss.Style
	NoticeInfo lipgloss.Style
}

var themes = map[string]Theme{
	"dark": {
		Name:          "dark",
		Text:          "#e6e6e6",
		Muted:         "#8a8a8a",
		Accent:        "#7aa2f7",
		Success:       "#9ece6a",
		Danger:        "#f7768e",
		SelectionBg:   "#283457",
		SelectionText: "#e6e6e6",
		Border:        "#3b4261",
	},
	"light": {
		Name:          "light",
		Text:          "#1a1a1a",
		Muted:         "#6c6c6c",
		Accent:        "#2959aa",
		Success:       "#33661a",
		Danger:        "#b3253f",
		SelectionBg:   "#d6e4ff",
		SelectionText: "#1a1a1a",
		Border:        "#c0c8da",
	},
}

// GetTheme returns the named theme, falling back to dark.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["dark"]
}
