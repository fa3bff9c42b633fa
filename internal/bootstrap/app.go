// Package bootstrap wires configuration into concrete dependencies:
// database, object store, LLM client, services and the router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/courses"
	"skillbridge-backend/internal/coverletter"
	"skillbridge-backend/internal/llm"
	openai "skillbridge-backend/internal/llm/openai"
	"skillbridge-backend/internal/match"
	"skillbridge-backend/internal/reports"
	"skillbridge-backend/internal/shared/config"
	"skillbridge-backend/internal/shared/server"
	"skillbridge-backend/internal/shared/storage/db"
	"skillbridge-backend/internal/shared/storage/object"
	localstore "skillbridge-backend/internal/shared/storage/object/local"
	s3store "skillbridge-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	CoursesRepo courses.Repo
	Recommender *courses.Recommender

	ReportsService     *reports.Service
	CoverLetterService *coverletter.Service

	ReportsHandler     *reports.Handler
	CoverLetterHandler *coverletter.Handler
}

// Build prepares the full dependency graph and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.Deps{
		Config:      app.Config,
		Reports:     app.ReportsHandler,
		CoverLetter: app.CoverLetterHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory course catalog")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory course catalog: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: OPENAI_API_KEY empty; LLM operations will fail until one is set")
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
}

func buildServices(app *App) {
	var repo courses.Repo
	if app.DB != nil {
		repo = &courses.PGRepo{DB: app.DB}
	} else {
		repo = courses.NewMemoryRepo()
	}

	recommender := &courses.Recommender{
		Repo:    repo,
		MaxFree: app.Config.MaxFreeCourses,
		MaxPaid: app.Config.MaxPaidCourses,
	}

	reportsSvc := reports.NewService(app.LLM, recommender, reports.Options{
		CacheTTL:        app.Config.CacheTTL,
		CacheMaxEntries: app.Config.CacheMaxEntries,
		PipelineTimeout: app.Config.PipelineTimeout,
		MatchConfig: match.Config{
			RequiredWeight:  app.Config.RequiredWeight,
			PreferredWeight: app.Config.PreferredWeight,
		},
	})
	coverSvc := coverletter.NewService(app.LLM, app.Store)

	app.CoursesRepo = repo
	app.Recommender = recommender
	app.ReportsService = reportsSvc
	app.CoverLetterService = coverSvc
	app.ReportsHandler = reports.NewHandler(reportsSvc)
	app.CoverLetterHandler = coverletter.NewHandler(coverSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
