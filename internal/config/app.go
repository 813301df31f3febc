package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mostafamoumen/contactchat/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"RUNTIME_PATH" envDefault:".contactchat"`
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8000"`

	// Model backend selection
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai"`

	// Conversation memory
	MemoryStrategy     string `env:"MEMORY_STRATEGY" envDefault:"buffer"` // buffer | entity
	ContextWindowSize  int    `env:"CONTEXT_WINDOW_SIZE" envDefault:"30"`
	ContextTokenBudget int    `env:"CONTEXT_TOKEN_BUDGET" envDefault:"4096"`

	// Deterministic lookup trigger vocabulary. A blunt heuristic carried
	// over as a latency optimization; tune rather than trust it.
	LookupKeywords []string `env:"LOOKUP_KEYWORDS" envDefault:"number,phone"`

	// Session table bounds
	SessionCapacity int           `env:"SESSION_CAPACITY" envDefault:"1024"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "contacts.db")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}
