package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"dealdesk-backend/internal/deals"
	"dealdesk-backend/internal/events"
	"dealdesk-backend/internal/fragments"
	"dealdesk-backend/internal/ingest"
	"dealdesk-backend/internal/llm"
	"dealdesk-backend/internal/llm/gemini"
	openai "dealdesk-backend/internal/llm/openai"
	"dealdesk-backend/internal/pipeline"
	"dealdesk-backend/internal/queue"
	"dealdesk-backend/internal/services/health"
	"dealdesk-backend/internal/shared/config"
	"dealdesk-backend/internal/shared/server"
	"dealdesk-backend/internal/shared/storage/db"
	"dealdesk-backend/internal/shared/storage/object"
	localstore "dealdesk-backend/internal/shared/storage/object/local"
	s3store "dealdesk-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies for the API and worker processes.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Queue         queue.Client
	QueueReceiver queue.Receiver

	DealsRepo  deals.Repo
	EventStore events.Store
	Fragments  fragments.Store
	Embedder   fragments.Embedder
	LLM        llm.Client

	Ingester   *ingest.Ingester
	Runner     *pipeline.Runner
	Dispatcher *pipeline.Dispatcher

	DealsService *deals.Service
	DealsHandler *deals.Handler
	Health       *health.Service
}

// Build prepares shared dependencies and wires the router.
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

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildQueue(ctx, app); err != nil {
		return nil, err
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      app.Config,
		DealHandler: app.DealsHandler,
		Health:      app.Health,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, app *App) error {
	switch app.Config.QueueType {
	case "sqs":
		client, err := queue.NewSQSClient(ctx)
		if err != nil {
			return err
		}
		app.Queue = client
		app.QueueReceiver = client
	default:
		mem := queue.NewMemoryQueue(0)
		app.Queue = mem
		app.QueueReceiver = mem
	}
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	cfg := app.Config

	var dealsRepo deals.Repo
	var eventStore events.Store
	if app.DB != nil {
		dealsRepo = &deals.PGRepo{DB: app.DB}
		eventStore = &events.PGStore{DB: app.DB}
	} else {
		dealsRepo = deals.NewMemoryRepo()
		eventStore = events.NewMemoryStore()
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return err
	}
	llmClient = llm.NewRetryingClient(llmClient)

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}

	fragmentStore := fragments.NewMemoryStore(embedder)

	ingester := &ingest.Ingester{
		Store:        app.Store,
		Fragments:    fragmentStore,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	}

	runner := &pipeline.Runner{
		Deals:        dealsRepo,
		Events:       eventStore,
		Ingester:     ingester,
		Fragments:    fragmentStore,
		LLM:          llmClient,
		EvidenceTopK: cfg.EvidenceTopK,
	}

	dealsSvc := &deals.Service{
		Repo:   dealsRepo,
		Events: eventStore,
		Store:  app.Store,
		Queue:  app.Queue,
	}

	app.DealsRepo = dealsRepo
	app.EventStore = eventStore
	app.Fragments = fragmentStore
	app.Embedder = embedder
	app.LLM = llmClient
	app.Ingester = ingester
	app.Runner = runner
	app.Dispatcher = &pipeline.Dispatcher{
		Queue:   app.QueueReceiver,
		Runner:  runner,
		Workers: cfg.PipelineWorkers,
	}
	app.DealsService = dealsSvc
	app.DealsHandler = deals.NewHandler(dealsSvc)
	app.Health = &health.Service{
		StoreType: cfg.ObjectStoreType,
		QueueType: cfg.QueueType,
		Database:  app.DB != nil,
	}

	return nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		client, err := gemini.NewClient(context.Background(), cfg.LLMModel)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: gemini client unavailable, using placeholder: %v", err)
				return llm.PlaceholderClient{}, nil
			}
			return nil, err
		}
		return client, nil
	default:
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: openai client unavailable, using placeholder: %v", err)
				return llm.PlaceholderClient{}, nil
			}
			return nil, err
		}
		return client, nil
	}
}

func buildEmbedder(cfg config.Config) (fragments.Embedder, error) {
	inner, err := openai.NewEmbeddingClient(os.Getenv("OPENAI_API_KEY"), cfg.EmbeddingModel)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: embeddings unavailable, using placeholder: %v", err)
			return embedderPlaceholder{}, nil
		}
		return nil, err
	}
	return fragments.NewCachedEmbedder(inner, cfg.EmbeddingCacheSize)
}

type embedderPlaceholder struct{}

func (embedderPlaceholder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	_ = ctx
	_ = texts
	return nil, errors.New("embedding client not configured")
}
