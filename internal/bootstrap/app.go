package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"docsummary-backend/internal/documents"
	"docsummary-backend/internal/llm"
	geminillm "docsummary-backend/internal/llm/gemini"
	openaillm "docsummary-backend/internal/llm/openai"
	"docsummary-backend/internal/shared/config"
	"docsummary-backend/internal/shared/server"
	"docsummary-backend/internal/shared/storage/db"
	"docsummary-backend/internal/shared/storage/object"
	localstore "docsummary-backend/internal/shared/storage/object/local"
	s3store "docsummary-backend/internal/shared/storage/object/s3"
	"docsummary-backend/internal/summaries"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Repo             documents.Repo
	LLM              llm.Client
	DocumentsService *documents.Service
	SummariesService *summaries.Service
	DocumentsHandler *documents.Handler
	SummariesHandler *summaries.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}

	if app.DB != nil {
		app.Repo = &documents.PGRepo{DB: app.DB}
	} else {
		app.Repo = documents.NewMemoryRepo()
	}

	app.DocumentsService = &documents.Service{
		Store:         app.Store,
		Repo:          app.Repo,
		CascadeDelete: cfg.CascadeDelete,
	}
	app.SummariesService = &summaries.Service{
		Store: app.Store,
		Repo:  app.Repo,
		LLM:   app.LLM,
	}
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.SummariesHandler = summaries.NewHandler(app.SummariesService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		DocumentsHandler: app.DocumentsHandler,
		SummariesHandler: app.SummariesHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory metadata repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory metadata repository: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return geminillm.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.LLMModel)
	case config.ProviderOpenAI:
		return openaillm.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel, cfg.OpenAIBaseURL)
	case config.ProviderDeepSeek:
		return openaillm.NewDeepSeekClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel, cfg.OpenAIBaseURL)
	default:
		return llm.Unconfigured{}, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
