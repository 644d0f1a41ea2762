// Package checker holds the symptom checker's state machine and the service
// that runs diagnosis and insight requests.
package checker

import (
	"slices"

	"github.com/Veraticus/pathogenius/internal/model"
)

// MsgInsightFailed is shown when an insight request fails for any reason.
const MsgInsightFailed = "Could not load insights."

// State is the full widget state. Transitions return a new State and never
// modify the receiver.
type State struct {
	Prediction       *model.Prediction
	Query            string
	Insight          string
	Err              string
	Selected         []string
	DiagnosisLoading bool
	InsightLoading   bool
}

// AddSymptom appends label if not already selected and clears the query.
func (s State) AddSymptom(label string) State {
	next := s
	next.Query = ""
	if label == "" || model.Contains(s.Selected, label) {
		next.Selected = slices.Clone(s.Selected)
		return next
	}
	next.Selected = append(slices.Clone(s.Selected), label)
	return next
}

// RemoveSymptom drops label from the selection.
func (s State) RemoveSymptom(label string) State {
	next := s
	next.Selected = make([]string, 0, len(s.Selected))
	for _, l := range s.Selected {
		if l != label {
			next.Selected = append(next.Selected, l)
		}
	}
	return next
}

// SetQuery replaces the search query.
func (s State) SetQuery(q string) State {
	next := s
	next.Query = q
	return next
}

// Suggestions returns catalog entries matching the query that are not yet
// selected.
func (s State) Suggestions() []string {
	return model.FilterCatalog(s.Query, s.Selected)
}

// CanDiagnose reports whether a diagnosis request may start.
func (s State) CanDiagnose() bool {
	return len(s.Selected) > 0 && !s.DiagnosisLoading
}

// CanRequestInsight reports whether an insight request may start.
func (s State) CanRequestInsight() bool {
	return s.Prediction != nil && !s.InsightLoading
}

// StartDiagnosis marks a diagnosis in flight and clears previous results.
func (s State) StartDiagnosis() State {
	next := s
	next.DiagnosisLoading = true
	next.Err = ""
	next.Insight = ""
	next.Prediction = nil
	return next
}

// DiagnosisSucceeded stores p and ends loading.
func (s State) DiagnosisSucceeded(p model.Prediction) State {
	next := s
	next.DiagnosisLoading = false
	next.Prediction = &p
	return next
}

// DiagnosisFailed records msg and ends loading.
func (s State) DiagnosisFailed(msg string) State {
	next := s
	next.DiagnosisLoading = false
	next.Err = msg
	return next
}

// StartInsight marks an insight request in flight.
func (s State) StartInsight() State {
	next := s
	next.InsightLoading = true
	return next
}

// InsightSucceeded stores text and ends loading.
func (s State) InsightSucceeded(text string) State {
	next := s
	next.InsightLoading = false
	next.Insight = text
	return next
}

// InsightFailed records the generic insight failure and ends loading. The
// prediction stays visible.
func (s State) InsightFailed() State {
	next := s
	next.InsightLoading = false
	next.Err = MsgInsightFailed
	return next
}

// InsightDiscarded ends loading for an insight that belongs to an earlier
// diagnosis, leaving the current insight untouched.
func (s State) InsightDiscarded() State {
	next := s
	next.InsightLoading = false
	return next
}
