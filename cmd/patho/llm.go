package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/pathogenius/internal/checker"
	"github.com/Veraticus/pathogenius/internal/config"
	"github.com/Veraticus/pathogenius/internal/llm"
)

// createChecker builds the diagnosis service from configuration.
// This function is shared by every command that talks to the model.
func createChecker(logger *slog.Logger) (*checker.Service, error) {
	v := viper.GetViper()

	cfg, err := config.LoadLLMConfig(v)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		logger.Warn("no Gemini API key configured; requests will fail",
			"config_key", config.KeyGeminiAPIKey,
			"env", config.APIKeyEnv)
	}

	client, err := llm.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	extractor, err := config.LoadExtractor(v)
	if err != nil {
		return nil, err
	}

	return checker.NewService(client,
		checker.WithLogger(logger),
		checker.WithExtractor(extractor),
	)
}
