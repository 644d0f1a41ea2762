package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/pathogenius/internal/common"
	"github.com/Veraticus/pathogenius/internal/extract"
	"github.com/Veraticus/pathogenius/internal/llm"
)

// Configuration keys.
const (
	KeyGeminiAPIKey          = "gemini.api_key"
	KeyGeminiModel           = "gemini.model"
	KeyGeminiEndpoint        = "gemini.endpoint"
	KeyGeminiTimeout         = "gemini.timeout"
	KeyGeminiSafetyThreshold = "gemini.safety_threshold"
	KeyExtractStrategy       = "extract.strategy"
	KeyServerAddr            = "server.addr"
	KeyLoggingLevel          = "logging.level"
	KeyLoggingFormat         = "logging.format"
)

// APIKeyEnv is read when no key is configured through viper.
const APIKeyEnv = "GEMINI_API_KEY"

// DefaultServerAddr is the listen address of the HTTP API.
const DefaultServerAddr = ":8080"

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyGeminiModel, llm.DefaultModel)
	v.SetDefault(KeyGeminiEndpoint, llm.DefaultEndpoint)
	v.SetDefault(KeyGeminiSafetyThreshold, llm.ThresholdBlockNone)
	v.SetDefault(KeyExtractStrategy, string(extract.StrategySpan))
	v.SetDefault(KeyServerAddr, DefaultServerAddr)
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, "console")
}

// LoadLLMConfig builds the client configuration. The key comes from
// gemini.api_key (config file or PATHO_GEMINI_API_KEY) and falls back to
// GEMINI_API_KEY. A missing key is not an error here; requests report it.
func LoadLLMConfig(v *viper.Viper) (llm.Config, error) {
	cfg := llm.Config{
		Provider: llm.DefaultProvider,
		APIKey:   v.GetString(KeyGeminiAPIKey),
		Model:    v.GetString(KeyGeminiModel),
		Endpoint: v.GetString(KeyGeminiEndpoint),
		Timeout:  v.GetDuration(KeyGeminiTimeout),
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = os.Getenv(APIKeyEnv)
	}

	if cfg.Timeout < 0 {
		return llm.Config{}, fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyGeminiTimeout)
	}

	threshold := strings.ToUpper(strings.TrimSpace(v.GetString(KeyGeminiSafetyThreshold)))
	if threshold == "" {
		threshold = llm.ThresholdBlockNone
	}
	if !validThreshold(threshold) {
		return llm.Config{}, fmt.Errorf("%w: unknown safety threshold %q", common.ErrInvalidConfig, threshold)
	}
	cfg.SafetySettings = llm.SafetySettingsWithThreshold(threshold)

	return cfg, nil
}

func validThreshold(t string) bool {
	switch t {
	case "BLOCK_NONE", "BLOCK_ONLY_HIGH", "BLOCK_MEDIUM_AND_ABOVE", "BLOCK_LOW_AND_ABOVE":
		return true
	}
	return false
}

// LoadExtractor returns the configured response extractor.
func LoadExtractor(v *viper.Viper) (extract.Extractor, error) {
	strategy, err := extract.ParseStrategy(v.GetString(KeyExtractStrategy))
	if err != nil {
		return extract.Extractor{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return extract.Extractor{Strategy: strategy}, nil
}
