package tui

import (
	"context"
	"log/slog"

	"github.com/Veraticus/pathogenius/internal/model"
	"github.com/Veraticus/pathogenius/internal/tui/themes"
)

// Checker runs the two model-backed operations.
type Checker interface {
	Diagnose(ctx context.Context, symptoms []string) (model.Prediction, error)
	Insights(ctx context.Context, symptoms []string) (string, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Checker        Checker
	Logger         *slog.Logger
	Initial        []string
	Width          int
	Height         int
	MaxSuggestions int
	AltScreen      bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Logger:         slog.Default(),
		Width:          80,
		Height:         24,
		MaxSuggestions: 6,
		AltScreen:      true,
	}
}

// WithChecker sets the diagnosis backend.
func WithChecker(c Checker) Option {
	return func(cfg *Config) {
		cfg.Checker = c
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithInitialSymptoms preselects symptoms.
func WithInitialSymptoms(labels []string) Option {
	return func(c *Config) {
		c.Initial = labels
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
