package llm

import (
	"context"
	"net/http"
	"time"
)

// Client defines the interface for text generation providers.
type Client interface {
	// Generate sends prompt and returns the raw text of the first candidate.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Defaults for the Gemini provider.
const (
	DefaultProvider = "gemini"
	DefaultModel    = "gemini-1.5-flash"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/"
)

// Config holds provider settings. The API key is always supplied by the
// caller; nothing is read from the environment here.
type Config struct {
	HTTPClient     *http.Client
	Provider       string
	APIKey         string
	Model          string
	Endpoint       string
	SafetySettings []SafetySetting
	Timeout        time.Duration
}

// SafetySetting sets the blocking threshold for one harm category.
type SafetySetting struct {
	Category  string `json:"category" mapstructure:"category"`
	Threshold string `json:"threshold" mapstructure:"threshold"`
}

// Harm categories sent with every request.
var harmCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// ThresholdBlockNone disables blocking for a category.
const ThresholdBlockNone = "BLOCK_NONE"

// PermissiveSafetySettings disables upstream blocking for all four harm
// categories. This is the default policy. The upstream may still stop a
// candidate with finish reason SAFETY.
func PermissiveSafetySettings() []SafetySetting {
	return SafetySettingsWithThreshold(ThresholdBlockNone)
}

// SafetySettingsWithThreshold applies threshold to all four harm categories.
func SafetySettingsWithThreshold(threshold string) []SafetySetting {
	settings := make([]SafetySetting, 0, len(harmCategories))
	for _, c := range harmCategories {
		settings = append(settings, SafetySetting{Category: c, Threshold: threshold})
	}
	return settings
}
