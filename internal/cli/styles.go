// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/pathogenius/internal/model"
)

var (
	// PrimaryColor is the main theme color and marks low urgency.
	PrimaryColor = lipgloss.Color("#3B82F6") // Blue
	// WarningColor marks medium urgency.
	WarningColor = lipgloss.Color("#F59E0B") // Amber
	// ErrorColor marks high urgency and errors.
	ErrorColor = lipgloss.Color("#EF4444") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2).
			Width(64)

	// BadgeStyle renders the urgency badge.
	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF"))
)

// Icons.
const (
	ErrorIcon   = "✗"
	PulseIcon   = "🩺"
	InsightIcon = "💡"
)

// Disclaimer is printed under every result.
const Disclaimer = "This AI model is not a doctor. Consult a healthcare professional for diagnosis."

// UrgencyColor returns the badge colour for u.
func UrgencyColor(u model.Urgency) lipgloss.Color {
	switch u.Normalized() {
	case model.UrgencyLow:
		return PrimaryColor
	case model.UrgencyHigh:
		return ErrorColor
	default:
		return WarningColor
	}
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatTitle formats a title with the stethoscope icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(PulseIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	))
}
