package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUrgency_Display(t *testing.T) {
	tests := []struct {
		name    string
		urgency Urgency
		want    string
	}{
		{name: "low", urgency: UrgencyLow, want: "LOW"},
		{name: "high", urgency: UrgencyHigh, want: "HIGH"},
		{name: "empty falls back to medium", urgency: "", want: "MEDIUM"},
		{name: "unknown kept verbatim", urgency: "critical", want: "CRITICAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.urgency.Display())
		})
	}
}

func TestUrgency_IsKnown(t *testing.T) {
	assert.True(t, UrgencyLow.IsKnown())
	assert.True(t, Urgency("HIGH").IsKnown())
	assert.False(t, Urgency("critical").IsKnown())
	assert.False(t, Urgency("").IsKnown())

	assert.Equal(t, UrgencyHigh, Urgency("High").Normalized())
	assert.Equal(t, UrgencyMedium, Urgency("severe").Normalized())
}

func TestDefaultPrediction(t *testing.T) {
	p := DefaultPrediction()
	assert.Equal(t, "Possible Condition Found", p.Name)
	assert.InDelta(t, 70.0, p.Score, 0.0001)
	assert.Equal(t, "The AI detected a pattern based on your input.", p.Description)
	assert.Equal(t, UrgencyMedium, p.Urgency)
}
