package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// runDiagnosis asks the checker for a prediction. The request is never
// cancelled from the UI; bubbletea drops the result after quit.
func (m Model) runDiagnosis(seq int) tea.Cmd {
	symptoms := slices.Clone(m.state.Selected)
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		p, err := backend.Diagnose(ctx, symptoms)
		return diagnosisResultMsg{prediction: p, err: err, seq: seq}
	}
}

// runInsight asks the checker for recovery tips.
func (m Model) runInsight(seq int) tea.Cmd {
	symptoms := slices.Clone(m.state.Selected)
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		text, err := backend.Insights(ctx, symptoms)
		return insightResultMsg{text: text, err: err, seq: seq}
	}
}
