// Package llm selects the text-generation provider configured for the
// extractor.
package llm

import (
	"context"
	"fmt"

	"github.com/heartmarshall/quizbank-backend/internal/adapter/llm/anthropic"
	"github.com/heartmarshall/quizbank-backend/internal/adapter/llm/gemini"
	"github.com/heartmarshall/quizbank-backend/internal/config"
	"github.com/heartmarshall/quizbank-backend/internal/extractor"
)

// New returns the Generator for cfg.Provider together with a function that
// releases its resources.
func New(ctx context.Context, cfg config.LLMConfig) (extractor.Generator, func() error, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return anthropic.New(cfg.APIKey, cfg.Timeout), func() error { return nil }, nil
	case config.ProviderGemini:
		c, err := gemini.New(ctx, cfg.APIKey, cfg.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini client: %w", err)
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
