// Package tui implements the interactive symptom checker.
package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/pathogenius/internal/checker"
	"github.com/Veraticus/pathogenius/internal/tui/themes"
)

// Model holds the TUI state. Widget state lives in checker.State; Model
// adds only terminal concerns.
type Model struct {
	ctx            context.Context
	backend        Checker
	logger         *slog.Logger
	theme          themes.Theme
	keymap         KeyMap
	input          textinput.Model
	spinner        spinner.Model
	state          checker.State
	cursor         int
	seq            int
	maxSuggestions int
	width          int
	height         int
	quitting       bool
}

// newModel creates a new model with the given configuration. Requests
// outlive the caller's cancellation; only their values are inherited.
func newModel(ctx context.Context, cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Search symptoms..."
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	state := checker.State{}
	for _, label := range cfg.Initial {
		state = state.AddSymptom(label)
	}

	return Model{
		ctx:            context.WithoutCancel(ctx),
		backend:        cfg.Checker,
		logger:         cfg.Logger,
		theme:          cfg.Theme,
		keymap:         DefaultKeyMap(),
		input:          ti,
		spinner:        sp,
		state:          state,
		maxSuggestions: cfg.MaxSuggestions,
		width:          cfg.Width,
		height:         cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current widget state.
func (m Model) State() checker.State {
	return m.state
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case diagnosisResultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Debug("diagnosis failed", "error", msg.err)
			m.state = m.state.DiagnosisFailed(checker.Message(msg.err))
			return m, nil
		}
		m.state = m.state.DiagnosisSucceeded(msg.prediction)
		return m, nil

	case insightResultMsg:
		if msg.seq != m.seq {
			m.state = m.state.InsightDiscarded()
			return m, nil
		}
		if msg.err != nil {
			m.logger.Debug("insight failed", "error", msg.err)
			m.state = m.state.InsightFailed()
			return m, nil
		}
		m.state = m.state.InsightSucceeded(msg.text)
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.suggestions())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keymap.Add):
		suggestions := m.suggestions()
		if len(suggestions) == 0 {
			return m, nil
		}
		m.state = m.state.AddSymptom(suggestions[m.cursor])
		m.input.SetValue("")
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keymap.Remove):
		if n := len(m.state.Selected); n > 0 {
			m.state = m.state.RemoveSymptom(m.state.Selected[n-1])
		}
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keymap.Diagnose):
		if !m.state.CanDiagnose() || m.backend == nil {
			return m, nil
		}
		m.seq++
		m.state = m.state.StartDiagnosis()
		return m, tea.Batch(m.spinner.Tick, m.runDiagnosis(m.seq))

	case key.Matches(msg, m.keymap.Insight):
		if !m.state.CanRequestInsight() || m.backend == nil {
			return m, nil
		}
		m.state = m.state.StartInsight()
		return m, tea.Batch(m.spinner.Tick, m.runInsight(m.seq))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = m.state.SetQuery(m.input.Value())
	m.clampCursor()
	return m, cmd
}

// suggestions lists matches for a non-empty query.
func (m Model) suggestions() []string {
	if strings.TrimSpace(m.state.Query) == "" {
		return nil
	}
	s := m.state.Suggestions()
	if m.maxSuggestions > 0 && len(s) > m.maxSuggestions {
		s = s[:m.maxSuggestions]
	}
	return s
}

func (m *Model) clampCursor() {
	n := len(m.suggestions())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) loading() bool {
	return m.state.DiagnosisLoading || m.state.InsightLoading
}
