package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kirillkom/slidemaker/internal/config"
	"github.com/kirillkom/slidemaker/internal/core/ports"
	"github.com/kirillkom/slidemaker/internal/core/usecase"
	"github.com/kirillkom/slidemaker/internal/infrastructure/candidate"
	"github.com/kirillkom/slidemaker/internal/infrastructure/extractor"
	"github.com/kirillkom/slidemaker/internal/infrastructure/llm/gemini"
	"github.com/kirillkom/slidemaker/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/slidemaker/internal/infrastructure/queue/nats"
	"github.com/kirillkom/slidemaker/internal/infrastructure/render/pptx"
	"github.com/kirillkom/slidemaker/internal/infrastructure/repository/memory"
	"github.com/kirillkom/slidemaker/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/slidemaker/internal/infrastructure/resilience"
	"github.com/kirillkom/slidemaker/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/slidemaker/internal/observability/metrics"
)

// Deps are the process-level collaborators shared by every component.
type Deps struct {
	Logger   *slog.Logger
	Pipeline *metrics.Pipeline
}

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Uploads   ports.UploadRepository
	ExtractUC ports.TextExtraction
	IngestUC  ports.DocumentIngestor
	ProcessUC ports.UploadProcessor

	GenerateUC ports.DeckGenerator
	ExportUC   ports.DeckExporter
	HistoryUC  ports.DeckHistoryService

	closeFn func()
}

// New wires the full service: Postgres, object storage, NATS and the deck
// pipeline. Used by the API and the worker.
func New(ctx context.Context, cfg config.Config, deps Deps) (*App, error) {
	deps = deps.normalize()

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	uploads := postgres.NewUploadRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: newPublishExecutor(cfg, deps),
		Logger:             deps.Logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	app := newDeckApp(cfg, deps, db, newExecutor(cfg, deps))
	extractUC := usecase.NewExtractUseCase(extractor.NewAdapter(deps.Logger), observer(deps))

	app.Queue = queue
	app.Uploads = uploads
	app.ExtractUC = extractUC
	app.IngestUC = usecase.NewIngestDocumentUseCase(uploads, storage, queue)
	app.ProcessUC = usecase.NewProcessDocumentUseCase(uploads, storage, extractUC)
	app.closeFn = func() {
		queue.Close()
		_ = db.Close()
	}
	return app, nil
}

// NewDeckApp wires only synthesis, history and export. Postgres is opened
// only for the postgres history backend. Used by the MCP server.
func NewDeckApp(ctx context.Context, cfg config.Config, deps Deps) (*App, error) {
	deps = deps.normalize()

	var db *sql.DB
	if cfg.HistoryBackend == config.HistoryBackendPostgres {
		var err error
		db, err = postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	app := newDeckApp(cfg, deps, db, newExecutor(cfg, deps))
	app.ExtractUC = usecase.NewExtractUseCase(extractor.NewAdapter(deps.Logger), observer(deps))
	app.closeFn = func() {
		if db != nil {
			_ = db.Close()
		}
	}
	return app, nil
}

func newDeckApp(cfg config.Config, deps Deps, db *sql.DB, executor *resilience.Executor) *App {
	history := newHistory(cfg, db)
	validator := candidate.New(deps.Logger, candidate.WithReportHook(func(report candidate.Report) {
		if deps.Pipeline != nil {
			deps.Pipeline.RecordCandidateRepairs(report.Repaired, report.NonObjects, report.DroppedBullets)
		}
	}))

	return &App{
		Config:     cfg,
		GenerateUC: usecase.NewGenerateDeckUseCase(NewSynthesizer(cfg, executor), validator, history, observer(deps)),
		ExportUC:   usecase.NewExportDeckUseCase(pptx.NewEncoder(), history, observer(deps)),
		HistoryUC:  usecase.NewHistoryUseCase(history),
	}
}

func newHistory(cfg config.Config, db *sql.DB) ports.DeckHistory {
	if cfg.HistoryBackend == config.HistoryBackendPostgres && db != nil {
		return postgres.NewHistoryRepository(db, cfg.HistoryCapacity)
	}
	return memory.NewHistory(cfg.HistoryCapacity)
}

// NewSynthesizer picks the configured provider. Both share one executor so
// retries and breaker transitions land in the same metrics.
func NewSynthesizer(cfg config.Config, executor *resilience.Executor) ports.Synthesizer {
	httpClient := &http.Client{Timeout: time.Duration(cfg.SynthesisTimeoutSeconds) * time.Second}

	switch cfg.LLMProvider {
	case config.LLMProviderGemini:
		return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel,
			gemini.WithBaseURL(cfg.GeminiBaseURL),
			gemini.WithHTTPClient(httpClient),
			gemini.WithExecutor(executor),
		)
	default:
		return ollama.New(cfg.OllamaURL, cfg.OllamaModel,
			ollama.WithHTTPClient(httpClient),
			ollama.WithExecutor(executor),
		)
	}
}

// newExecutor guards synthesis calls. The retry knobs from config override
// the synthesis policy.
func newExecutor(cfg config.Config, deps Deps) *resilience.Executor {
	policy := resilience.SynthesisPolicy()
	policy.RetryMaxAttempts = cfg.RetryMaxAttempts
	policy.RetryInitialBackoff = cfg.RetryInitialBackoff
	policy.BreakerEnabled = cfg.BreakerEnabled
	return resilience.NewExecutor(policy, executorOptions(deps)...)
}

func newPublishExecutor(cfg config.Config, deps Deps) *resilience.Executor {
	policy := resilience.PublishPolicy()
	policy.BreakerEnabled = cfg.BreakerEnabled
	return resilience.NewExecutor(policy, executorOptions(deps)...)
}

func executorOptions(deps Deps) []resilience.Option {
	opts := []resilience.Option{resilience.WithLogger(deps.Logger)}
	if deps.Pipeline != nil {
		opts = append(opts, resilience.WithObserver(deps.Pipeline))
	}
	return opts
}

// observer avoids handing a typed nil pipeline to the use cases.
func observer(deps Deps) ports.PipelineObserver {
	if deps.Pipeline == nil {
		return nil
	}
	return deps.Pipeline
}

func (d Deps) normalize() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return d
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
