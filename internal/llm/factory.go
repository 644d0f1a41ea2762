package llm

import (
	"fmt"
	"log/slog"
	"strings"
)

// NewClient creates a client for the configured provider.
func NewClient(cfg Config, logger *slog.Logger) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", DefaultProvider:
		return NewGeminiClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
