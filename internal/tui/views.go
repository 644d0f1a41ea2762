package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const disclaimer = "This AI model is not a doctor. Consult a healthcare professional for diagnosis."

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render("🩺 PathoGenius Symptom Checker"),
		m.renderSelection(),
		m.input.View(),
	}

	if list := m.renderSuggestions(); list != "" {
		sections = append(sections, list)
	}

	sections = append(sections, "", m.renderAction())

	if m.state.Err != "" {
		sections = append(sections, "", m.renderError())
	}

	if m.state.Prediction != nil && !m.state.DiagnosisLoading {
		sections = append(sections, "", m.renderPrediction())
	}

	sections = append(sections, "", m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSelection() string {
	if len(m.state.Selected) == 0 {
		return m.theme.Subtitle.Render("No symptoms selected")
	}
	chips := make([]string, 0, len(m.state.Selected))
	for _, s := range m.state.Selected {
		chips = append(chips, m.theme.Chip.Render(s+" ×"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m Model) renderSuggestions() string {
	if strings.TrimSpace(m.state.Query) == "" {
		return ""
	}
	suggestions := m.suggestions()
	if len(suggestions) == 0 {
		return m.theme.Subtitle.Italic(true).Render("  No matches found")
	}

	lines := make([]string, 0, len(suggestions))
	for i, s := range suggestions {
		if i == m.cursor {
			lines = append(lines, m.theme.Selected.Render("+ "+s))
			continue
		}
		lines = append(lines, m.theme.Normal.Render("  "+s))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAction() string {
	if m.state.DiagnosisLoading {
		return m.spinner.View() + " Running Neural Analysis..."
	}
	if len(m.state.Selected) == 0 {
		return m.theme.Subtitle.Render("✨ Analyze with PathoGenius AI (select a symptom first)")
	}
	return m.theme.Bold.Render("✨ Analyze with PathoGenius AI") + m.theme.Help.Render("  ctrl+r")
}

func (m Model) renderError() string {
	return m.theme.StatusError.Render("System Notification") + "\n" + m.state.Err
}

func (m Model) renderPrediction() string {
	p := m.state.Prediction

	card := []string{
		m.theme.Subtitle.Render("LIKELY CONDITION"),
		m.theme.Bold.Render(p.Name) + "  " + m.theme.StatusInfo.Render(fmt.Sprintf("%.0f%% Match", p.Score)),
		p.Description,
		m.theme.UrgencyBadge(p.Urgency),
	}

	switch {
	case m.state.InsightLoading:
		card = append(card, "", m.spinner.View()+" ✨ Get Health Insights")
	case m.state.Insight != "":
		card = append(card, "", m.theme.Bold.Render("✨ Personal Wellness Strategy"), m.state.Insight)
	default:
		card = append(card, "", m.theme.Help.Render("✨ Get Health Insights  ctrl+t"))
	}

	card = append(card, "", m.theme.Help.Render(disclaimer))

	box := m.theme.RoundedBox
	if m.width > 8 {
		box = box.Width(m.width - 4)
	}
	return box.Render(strings.Join(card, "\n"))
}

func (m Model) renderHelp() string {
	bindings := m.keymap.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Help.Render(strings.Join(parts, " • "))
}
