package tui

import "github.com/Veraticus/pathogenius/internal/model"

// Async operation messages.
type diagnosisResultMsg struct {
	err        error
	prediction model.Prediction
	seq        int
}

type insightResultMsg struct {
	err  error
	text string
	seq  int
}
