// Package themes defines the colour schemes of the interactive checker.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/pathogenius/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	Chip        lipgloss.Style
	RoundedBox  lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	Help        lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
	Error       lipgloss.Color
	Warning     lipgloss.Color
}

// UrgencyColor returns the colour for an urgency level. Unknown levels use
// the medium colour.
func (t Theme) UrgencyColor(u model.Urgency) lipgloss.Color {
	switch u.Normalized() {
	case model.UrgencyLow:
		return t.Primary
	case model.UrgencyHigh:
		return t.Error
	default:
		return t.Warning
	}
}

// UrgencyBadge renders the upper-cased urgency on its colour.
func (t Theme) UrgencyBadge(u model.Urgency) string {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("#ffffff")).
		Background(t.UrgencyColor(u)).
		Render(u.Display() + " URGENCY")
}

func build(primary, fg, muted, border, warning, errColor, chipBg string) Theme {
	return Theme{
		Primary:    lipgloss.Color(primary),
		Foreground: lipgloss.Color(fg),
		Muted:      lipgloss.Color(muted),
		Border:     lipgloss.Color(border),
		Warning:    lipgloss.Color(warning),
		Error:      lipgloss.Color(errColor),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(primary)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fg)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(primary)).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),
		Chip: lipgloss.NewStyle().
			Background(lipgloss.Color(chipBg)).
			Foreground(lipgloss.Color(fg)).
			Padding(0, 1).
			MarginRight(1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(1, 2),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(errColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(primary)).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
	}
}

// Default is the default theme.
var Default = build("#2563eb", "#fafafa", "#737373", "#404040", "#f59e0b", "#ef4444", "#1e3a8a")

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build("#89b4fa", "#cdd6f4", "#6c7086", "#45475a", "#f9e2af", "#f38ba8", "#313244")

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
