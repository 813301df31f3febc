package llm

import (
	"context"
	"fmt"

	"github.com/mostafamoumen/contactchat/internal/config"
	"github.com/mostafamoumen/contactchat/internal/core"
	"github.com/mostafamoumen/contactchat/pkg/log"
)

// NewProvider creates the appropriate AIProvider based on configuration.
// Each provider's config carries its own required API key, so a missing
// secret for the selected provider is fatal at startup.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "openai":
		c := config.NewOpenAIConfig(ctx)
		return NewOpenAI(c.APIKey, c.Model), nil
	case "openrouter":
		c := config.NewOpenRouterConfig(ctx)
		return NewOpenRouter(c.APIKey, c.Model), nil
	case "ollama":
		c := config.NewOllamaConfig(ctx)
		return NewOllama(c.BaseURL, c.APIKey, c.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
