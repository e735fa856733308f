// Package app wires configuration into the services shared by the HTTP
// server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/junova144/Eva/config"
	"github.com/junova144/Eva/db"
	"github.com/junova144/Eva/services"
	"github.com/junova144/Eva/services/agent"
	"github.com/junova144/Eva/services/llm"
	"github.com/junova144/Eva/services/orchestrator"
	"github.com/junova144/Eva/services/pinecone"
	"github.com/junova144/Eva/services/search"
	"github.com/junova144/Eva/services/validator"
	"github.com/junova144/Eva/tracing"
)

const fallbackSearchResults = 4

type App struct {
	Orchestrator *orchestrator.Service
	Sessions     *services.SessionService

	closers []func(context.Context) error
}

// New builds every service. Nothing is returned on error, so no agent is
// left usable after a failed start.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	shutdown, err := tracing.Setup(ctx, cfg.TracingEndpoint, cfg.TracingAPIKey, cfg.TracingProject)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.closers = append(a.closers, shutdown)

	model, err := llm.New(llm.Options{
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
		APIKey:   cfg.ModelAPIKey,
		Callback: llm.LogHandler{},
	})
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to initialize chat model: %w", err)
	}

	searcher, err := newSearcher(cfg)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	repo, err := newSessionRepository(cfg)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	if closer, ok := repo.(interface{ Close() error }); ok {
		a.closers = append(a.closers, func(context.Context) error { return closer.Close() })
	}

	registry := agent.NewRegistry(model, searcher, agent.WithMaxIterations(cfg.AgentMaxIterations))
	pipeline := validator.NewPipeline(validator.NewLLMClassifier(model))

	a.Sessions = services.NewSessionService(repo)
	a.Orchestrator = orchestrator.NewService(pipeline, registry, a.Sessions)

	log.Printf("[INFO] EVA initialized with %d agents", len(registry.Courses()))
	return a, nil
}

func newSearcher(cfg *config.Config) (search.Searcher, error) {
	web, err := search.NewWebSearcher(cfg.SearchAPIKey)
	if err != nil {
		return nil, err
	}
	searchers := []search.Searcher{search.Traced("web", web)}

	if cfg.CurriculumSearchEnabled() {
		index, err := pinecone.NewService(cfg.PineconeAPIKey, cfg.EmbeddingAPIKey, cfg.PineconeIndexName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize curriculum index: %w", err)
		}
		searchers = append(searchers, search.Traced("curriculum", search.NewCurriculumSearcher(index)))
	}

	if cfg.SearchFallback {
		ddg, err := search.NewDuckDuckGoSearcher(fallbackSearchResults)
		if err != nil {
			return nil, err
		}
		searchers = append(searchers, search.Traced("duckduckgo", ddg))
	}

	return search.NewMultiSearcher(searchers...), nil
}

func newSessionRepository(cfg *config.Config) (db.SessionRepository, error) {
	if cfg.DatabaseURL == "" {
		log.Printf("[INFO] DB_URL not set, keeping sessions in memory")
		return db.NewInMemorySessionRepository(), nil
	}

	repo, err := db.NewPostgresSessionRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session database: %w", err)
	}
	return repo, nil
}

// Close flushes spans and releases the session store.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
