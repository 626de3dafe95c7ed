package assistant

import (
	"context"
	"fmt"

	"eq/internal/config"
)

// NewProvider builds the configured assistant backend. A missing API key is
// an error here, not at send time, so the session can fall back to running
// without an assistant instead of failing every chat submission.
func NewProvider(ctx context.Context, cfg config.AssistantConfig) (Provider, error) {
	key := cfg.ResolveAPIKey()
	if key == "" {
		return nil, fmt.Errorf("no API key for provider %q", cfg.Provider)
	}

	switch cfg.Provider {
	case "gemini":
		return NewGeminiClient(ctx, key, cfg.Model)
	case "openai", "":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  key,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.ResolveTimeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", cfg.Provider)
	}
}
