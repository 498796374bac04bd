package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/corpus"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/pipeline"
)

// loadConfig reads --config, the environment and defaults, then lets --verbose win
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, observability.NewLogger(cfg.Verbose), nil
}

// newLLMClient returns nil when no API key is configured; every extractor then runs its
// local fallback.
func newLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.Client, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if errors.Is(err, llm.ErrMissingAPIKey) {
		logger.Warn("GEMINI_API_KEY not set, using local fallback extraction only")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// newPipeline wires the assembler and field extractors. store may be nil.
func newPipeline(client llm.Client, store pipeline.HistoryStore, logger *zap.Logger) *pipeline.Pipeline {
	return pipeline.New(
		corpus.NewAssembler(nil, logger),
		parsing.NewExtractor(client, logger),
		store,
		logger,
	)
}

// connectDB opens the database named by the config
func connectDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable or database_url config is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}
