package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/mostafamoumen/contactchat/internal/config"
	"github.com/mostafamoumen/contactchat/internal/providers/llm"
	"github.com/mostafamoumen/contactchat/internal/service/chat"
	"github.com/mostafamoumen/contactchat/internal/service/extract"
	"github.com/mostafamoumen/contactchat/internal/service/session"
	"github.com/mostafamoumen/contactchat/internal/storage/sqlite"
	"github.com/mostafamoumen/contactchat/internal/transport/httpapi"
	"github.com/mostafamoumen/contactchat/pkg/log"
	"github.com/mostafamoumen/contactchat/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Contact store
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))
	contacts := sqlite.NewContacts(db)

	// 3. Model provider (validates the provider's API key)
	aiProvider, err := llm.NewProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Session table
	factory, err := session.NewStrategyFactory(appCfg.MemoryStrategy, session.Window{
		Turns:       appCfg.ContextWindowSize,
		TokenBudget: appCfg.ContextTokenBudget,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize session memory")
	}
	sessions := session.NewManager(appCfg.SessionCapacity, appCfg.SessionTTL, factory)

	// 5. Extraction policy + orchestration
	policy := extract.NewPolicy(contacts, aiProvider, appCfg.LookupKeywords)
	router := chat.NewRouter(sessions, policy)

	// 6. Transport
	services = append(services, httpapi.New(appCfg, router))

	return services
}

// initEnv loads .env from the runtime path, falling back to the working
// directory. A missing file is fine; required keys are enforced later by
// the config structs.
func initEnv(runtimePath string) error {
	path := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(path); err == nil {
		return godotenv.Load(path)
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}
