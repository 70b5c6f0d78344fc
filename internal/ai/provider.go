package ai

import (
	"context"
	"fmt"
)

// AIProvider is the interface that all LLM providers must implement.
type AIProvider interface {
	// DraftArticle generates a travel article draft for the requested
	// destination and topic.
	DraftArticle(ctx context.Context, req DraftRequest) (*Draft, error)

	// Translate renders an article's title and body into the requested
	// locale.
	Translate(ctx context.Context, req TranslateRequest) (*Translated, error)
}

// NewProvider creates the appropriate provider based on config.
func NewProvider(cfg ProviderConfig) (AIProvider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
