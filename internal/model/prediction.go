// Package model defines the core domain models used throughout the application.
package model

import "strings"

// Urgency is the triage level reported by the model. Values outside the
// known constants are kept as received.
type Urgency string

// Urgency constants.
const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Prediction defaults applied when the upstream omits a field.
const (
	DefaultName        = "Possible Condition Found"
	DefaultScore       = 70.0
	DefaultDescription = "The AI detected a pattern based on your input."
	DefaultUrgency     = UrgencyMedium
)

// Display returns the upper-cased form used on result cards.
func (u Urgency) Display() string {
	if u == "" {
		return strings.ToUpper(string(DefaultUrgency))
	}
	return strings.ToUpper(string(u))
}

// IsKnown reports whether u is one of low, medium or high.
func (u Urgency) IsKnown() bool {
	switch Urgency(strings.ToLower(string(u))) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Normalized returns the lower-cased urgency, or medium if unknown.
// Only used for picking display colours.
func (u Urgency) Normalized() Urgency {
	if !u.IsKnown() {
		return DefaultUrgency
	}
	return Urgency(strings.ToLower(string(u)))
}

// Prediction is the structured result of a diagnosis request.
type Prediction struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Urgency     Urgency `json:"urgency" yaml:"urgency"`
	Score       float64 `json:"score" yaml:"score"`
}

// DefaultPrediction returns a prediction with every field at its default.
func DefaultPrediction() Prediction {
	return Prediction{
		Name:        DefaultName,
		Score:       DefaultScore,
		Description: DefaultDescription,
		Urgency:     DefaultUrgency,
	}
}
