package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/job-ledger/internal/config"
	"github.com/jonathan/job-ledger/internal/extraction"
	"github.com/jonathan/job-ledger/internal/ledger"
	"github.com/jonathan/job-ledger/internal/llm"
	"github.com/jonathan/job-ledger/internal/pipeline"
)

// newModel creates the model client. Tests replace it with a fake.
var newModel = func(ctx context.Context, cfg *llm.Config, apiKey string) (llm.Client, error) {
	return llm.NewClient(ctx, cfg, apiKey)
}

// buildPipeline wires model, extractor and ledger. The caller closes the returned client.
func buildPipeline(ctx context.Context, cfg config.Config, log zerolog.Logger, onProgress pipeline.ProgressCallback) (*pipeline.Pipeline, llm.Client, error) {
	llmCfg := cfg.LLMConfig()
	client, err := newModel(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	log.Debug().
		Str("provider", string(llmCfg.Provider)).
		Str("model", client.ModelName()).
		Str("csv", cfg.CSVPath).
		Int("max_attempts", cfg.MaxAttempts).
		Msg("pipeline configured")

	extractor := extraction.NewExtractor(client, extraction.Options{
		MaxAttempts: cfg.MaxAttempts,
		RetryDelay:  cfg.RetryDelay(),
		DeepRepair:  cfg.DeepRepair,
		Logger:      &log,
	})
	p := pipeline.New(extractor, ledger.NewCSVLedger(cfg.CSVPath), pipeline.Options{
		Logger:     &log,
		OnProgress: onProgress,
	})
	return p, client, nil
}
