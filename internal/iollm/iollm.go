// Package iollm provides the language model clients that write SQL for
// bikeq. Two providers are supported: any OpenAI-compatible chat
// completions endpoint and Google Gemini.
package iollm

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/bikeq/bikeq/pkg/config"
	"github.com/bikeq/bikeq/pkg/synth"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// envKeys are checked when llm.api_key is not set.
var envKeys = map[string]string{
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderGemini: "GEMINI_API_KEY",
}

// New creates the Generator for the configured provider.
func New(ctx context.Context, cfg config.LLMConfig) (synth.Generator, error) {
	key := APIKey(cfg)
	switch cfg.Provider {
	case ProviderGemini:
		if key == "" {
			return nil, ConfigError(ProviderGemini, "API key is missing")
		}
		gen, err := NewGemini(ctx, key, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		slog.Info("Using Gemini", "model", cfg.Model)
		return gen, nil
	case ProviderOpenAI, "":
		// local OpenAI-compatible servers often run without a key
		if key == "" && isOpenAIHost(cfg.BaseURL) {
			return nil, ConfigError(ProviderOpenAI, "API key is missing")
		}
		slog.Info("Using OpenAI-compatible endpoint",
			"model", cfg.Model, "base_url", cfg.BaseURL)
		return NewOpenAI(cfg.BaseURL, key, cfg.Model, cfg.Temperature, nil), nil
	default:
		return nil, ConfigError(cfg.Provider, "unknown provider")
	}
}

// APIKey returns the configured key or the provider's environment
// variable.
func APIKey(cfg config.LLMConfig) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}
	return strings.TrimSpace(os.Getenv(envKeys[provider]))
}

func isOpenAIHost(baseURL string) bool {
	return baseURL == "" || strings.Contains(baseURL, "api.openai.com")
}
