package app

import (
	"context"
	"fmt"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/llm/gemini"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/llm/openai"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/llm"
)

var (
	geminiFormatterCtor = gemini.NewFormatter
	openaiFormatterCtor = openai.NewFormatter
	formatterFactory    = newFormatter
)

/**
 * Builds the formatter selected by LLM_PROVIDER and returns its closer.
 */
func newFormatter(ctx context.Context) (llm.Formatter, func() error, error) {
	provider, err := config.LoadLLMProvider()
	if err != nil {
		return nil, nil, err
	}

	switch provider {
	case config.LLMProviderGemini:
		cfg, err := config.LoadGeminiConfigFromEnv()
		if err != nil {
			return nil, nil, fmt.Errorf("load gemini config: %w", err)
		}
		f, err := geminiFormatterCtor(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	default:
		cfg, err := config.LoadOpenAIConfigFromEnv()
		if err != nil {
			return nil, nil, fmt.Errorf("load openai config: %w", err)
		}
		f, err := openaiFormatterCtor(cfg.APIKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}
}
