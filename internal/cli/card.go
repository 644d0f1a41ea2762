package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/pathogenius/internal/model"
)

// RenderPrediction renders the diagnosis card for symptoms.
func RenderPrediction(symptoms []string, p model.Prediction) string {
	badge := BadgeStyle.
		Background(UrgencyColor(p.Urgency)).
		Render(p.Urgency.Display() + " URGENCY")

	lines := []string{
		BoldStyle.Render(p.Name),
		fmt.Sprintf("%s Match", FormatScore(p.Score)),
		badge,
		"",
		p.Description,
		"",
		SubtleStyle.Render("Symptoms: " + strings.Join(symptoms, ", ")),
		SubtleStyle.Render(Disclaimer),
	}

	return RenderBox(PulseIcon+" Likely Condition", lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderInsight renders free-text tips.
func RenderInsight(text string) string {
	return RenderBox(InsightIcon+" Personal Wellness Strategy", strings.TrimSpace(text))
}

// RenderSymptoms renders a catalog listing, one label per line.
func RenderSymptoms(labels []string) string {
	if len(labels) == 0 {
		return SubtleStyle.Render("No matching symptoms.")
	}
	var b strings.Builder
	for _, l := range labels {
		b.WriteString("  • ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatScore renders a score as a whole percentage.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.0f%%", score)
}
