package checker

import (
	"errors"

	"github.com/Veraticus/pathogenius/internal/common"
	"github.com/Veraticus/pathogenius/internal/llm"
)

// Messages for errors without their own wording.
const (
	MsgUnexpected = "An unexpected error occurred. Please try again."
	MsgNoSymptoms = "Select at least one symptom."
)

// Message returns the single human-readable line shown for err.
func Message(err error) string {
	if err == nil {
		return ""
	}

	if msg, ok := llm.UserMessage(err); ok {
		return msg
	}

	var userErr *common.UserError
	if errors.As(err, &userErr) && userErr.UserMessage != "" {
		return userErr.UserMessage
	}

	if errors.Is(err, common.ErrNoSymptoms) {
		return MsgNoSymptoms
	}

	return MsgUnexpected
}
