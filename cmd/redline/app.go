package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vampirenirmal/redline/internal/agent"
	"github.com/vampirenirmal/redline/internal/bible"
	"github.com/vampirenirmal/redline/internal/characters"
	"github.com/vampirenirmal/redline/internal/config"
	"github.com/vampirenirmal/redline/internal/outline"
	"github.com/vampirenirmal/redline/internal/review"
	"github.com/vampirenirmal/redline/internal/schema"
	"github.com/vampirenirmal/redline/internal/storage"
)

// app wires the shared dependency graph for every subcommand.
type app struct {
	cfg      *config.Config
	store    *storage.FileSystem
	acts     *storage.ActStore
	bible    *bible.Service
	outlines *outline.Registry
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store := storage.NewFileSystem(cfg.Paths.DataDir)
	return &app{
		cfg:      cfg,
		store:    store,
		acts:     storage.NewActStore(store),
		bible:    bible.NewService(store),
		outlines: outline.NewRegistry(cfg.Paths.OutlineDir),
	}, nil
}

func (a *app) loadCharacters(ctx context.Context) ([]schema.Character, error) {
	registry, err := characters.Load(ctx, a.store)
	if err != nil {
		return nil, fmt.Errorf("loading character registry: %w", err)
	}
	return registry, nil
}

// newOrchestrator builds a review orchestrator over the configured AI
// backend and the current character registry.
func (a *app) newOrchestrator(ctx context.Context) (*review.Orchestrator, error) {
	registry, err := a.loadCharacters(ctx)
	if err != nil {
		return nil, err
	}

	client := agent.NewClient(a.cfg.AI.APIKey,
		agent.WithAPIConfig(a.cfg.AI.BaseURL, a.cfg.AI.Model),
		agent.WithTimeout(time.Duration(a.cfg.AI.Timeout)*time.Second),
		agent.WithRetry(a.cfg.Limits.MaxRetries),
		agent.WithRateLimit(a.cfg.Limits.RateLimit.RequestsPerMinute, a.cfg.Limits.RateLimit.BurstSize),
	)

	return review.New(client,
		review.WithCharacters(registry),
		review.WithOutlineResolver(a.outlines),
	), nil
}
