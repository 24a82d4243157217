// Package pipeline orchestrates the batch: for each splitter configuration,
// load documents, split, embed, and write to the graph, logging a summary
// per configuration.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dtorres/chunkgraph/internal/config"
	"github.com/dtorres/chunkgraph/internal/embedding"
	"github.com/dtorres/chunkgraph/internal/graph"
	"github.com/dtorres/chunkgraph/internal/splitter"
)

// Embedder generates one vector per chunk text.
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Writer persists a document with its ordered chunks.
type Writer interface {
	WriteDocument(ctx context.Context, doc graph.Document, chunks []graph.Chunk) error
}

// ConfigResult is the outcome of one splitter configuration.
type ConfigResult struct {
	Config    string
	Strategy  config.Strategy
	Documents int
	Chunks    int
	Duration  time.Duration
	Err       error // joined errors of every failing document
}

// RunResult aggregates a whole batch run.
type RunResult struct {
	RunID    string
	Configs  []ConfigResult
	Fatal    error // set when a fatal error aborted remaining configs
	Duration time.Duration
}

// OK reports whether every configuration completed without error.
func (r *RunResult) OK() bool {
	if r.Fatal != nil {
		return false
	}
	for _, c := range r.Configs {
		if c.Err != nil {
			return false
		}
	}
	return true
}

// Runner executes splitter configurations strictly sequentially: one
// configuration, one document, one embedding batch at a time.
type Runner struct {
	embedder Embedder
	writer   Writer
	logger   *slog.Logger
}

// NewRunner creates a Runner with the given components.
func NewRunner(embedder Embedder, writer Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		embedder: embedder,
		writer:   writer,
		logger:   logger,
	}
}

// Run processes all configurations in order. An error inside one
// configuration is logged and recorded, and the runner proceeds to the
// next; a fatal error (auth failure, unreachable graph) aborts the
// remaining configurations.
func (r *Runner) Run(ctx context.Context, configs []*config.SplitterConfig) *RunResult {
	start := time.Now()
	result := &RunResult{RunID: uuid.New().String()}
	logger := r.logger.With("run_id", result.RunID)

	logger.Info("Starting batch run", "configs", len(configs))

	for _, cfg := range configs {
		cr := r.runConfig(ctx, logger, cfg)
		result.Configs = append(result.Configs, cr)

		if cr.Err != nil && isFatal(cr.Err) {
			result.Fatal = cr.Err
			logger.Error("Fatal error, aborting remaining configurations",
				"config", cfg.Name, "error", cr.Err)
			break
		}
	}

	result.Duration = time.Since(start)
	logger.Info("Batch run complete",
		"configs", len(result.Configs),
		"ok", result.OK(),
		"duration", result.Duration,
	)
	return result
}

// runConfig processes a single configuration across all of its documents.
func (r *Runner) runConfig(ctx context.Context, logger *slog.Logger, cfg *config.SplitterConfig) ConfigResult {
	start := time.Now()
	cr := ConfigResult{Config: cfg.Name, Strategy: cfg.Splitter.Strategy}
	logger = logger.With("config", cfg.Name, "strategy", cfg.Splitter.Strategy)

	logger.Info("Processing configuration", "documents", len(cfg.Documents))

	split, err := splitter.New(cfg.Splitter)
	if err != nil {
		cr.Err = fmt.Errorf("build splitter: %w", err)
		cr.Duration = time.Since(start)
		logger.Error("Failed to build splitter", "error", err)
		return cr
	}

	for _, docRef := range cfg.Documents {
		chunks, err := r.processDocument(ctx, split, cfg, docRef)
		if err != nil {
			// Every failing document is kept; errors.Is still sees each one.
			cr.Err = errors.Join(cr.Err, fmt.Errorf("document %q: %w", docRef.Name, err))
			logger.Error("Failed to process document", "document", docRef.Name, "error", err)
			if isFatal(err) {
				break
			}
			continue // other documents in this config still run
		}
		cr.Documents++
		cr.Chunks += chunks
		logger.Info("Processed document", "document", docRef.Name, "chunks", chunks)
	}

	cr.Duration = time.Since(start)
	logger.Info("Configuration complete",
		"documents", cr.Documents,
		"chunks", cr.Chunks,
		"duration", cr.Duration,
	)
	return cr
}

// processDocument runs split -> embed -> write for one document and returns
// the chunk count.
func (r *Runner) processDocument(ctx context.Context, split splitter.Splitter, cfg *config.SplitterConfig, docRef config.DocumentRef) (int, error) {
	text, err := docRef.Load()
	if err != nil {
		return 0, err
	}

	chunks, err := split.Split(text)
	if err != nil {
		return 0, fmt.Errorf("split: %w", err)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	embeddings, err := r.embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embed: got %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	graphChunks := make([]graph.Chunk, len(chunks))
	for i, c := range chunks {
		graphChunks[i] = graph.Chunk{
			Document:   docRef.Name,
			Splitter:   string(cfg.Splitter.Strategy),
			Index:      c.Index,
			Text:       c.Text,
			HeaderPath: c.HeaderPath,
			Embedding:  embeddings[i],
		}
	}

	doc := graph.Document{Name: docRef.Name, Text: text}
	if err := r.writer.WriteDocument(ctx, doc, graphChunks); err != nil {
		return 0, fmt.Errorf("write graph: %w", err)
	}

	return len(chunks), nil
}

// isFatal reports whether an error must abort the whole batch: broken
// credentials or an unreachable graph store cannot succeed for any later
// configuration.
func isFatal(err error) bool {
	return errors.Is(err, embedding.ErrAuth) ||
		errors.Is(err, graph.ErrUnreachable) ||
		errors.Is(err, config.ErrMissingEnv)
}
