package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of a generation request.
type ErrorKind string

// Error kinds.
const (
	KindConfiguration     ErrorKind = "configuration"
	KindNetwork           ErrorKind = "network"
	KindRateLimit         ErrorKind = "rate_limit"
	KindUpstream          ErrorKind = "upstream"
	KindContentFiltered   ErrorKind = "content_filtered"
	KindEmptyResponse     ErrorKind = "empty_response"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// User-facing messages for kinds with a fixed wording.
const (
	MsgMissingCredential = "API Key Missing: set gemini.api_key or GEMINI_API_KEY."
	MsgNetwork           = "Could not reach the AI service. Check your connection and try again."
	MsgRateLimited       = "API Limit Reached: Please wait a minute."
	MsgContentFiltered   = "The AI safety filter blocked this query. Try describing your symptoms differently."
	MsgEmptyResponse     = "The AI returned an empty response. Please try again."
	MsgUnreadableBody    = "Google API Error: unreadable response body"
	MsgNoStructure       = "Could not find a valid data structure in the AI response."
	MsgInvalidStructure  = "The AI response contained an invalid data structure."
)

// Error is a classified generation failure. Message is always suitable for
// showing to the user.
type Error struct {
	Err        error
	Kind       ErrorKind
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrConfiguration     = &Error{Kind: KindConfiguration}
	ErrNetwork           = &Error{Kind: KindNetwork}
	ErrRateLimit         = &Error{Kind: KindRateLimit}
	ErrUpstream          = &Error{Kind: KindUpstream}
	ErrContentFiltered   = &Error{Kind: KindContentFiltered}
	ErrEmptyResponse     = &Error{Kind: KindEmptyResponse}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
)

// NewError creates a classified error.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the kind of err, or "" if err is not classified.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// UserMessage returns the human-readable message carried by err, if any.
func UserMessage(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message, true
	}
	return "", false
}
