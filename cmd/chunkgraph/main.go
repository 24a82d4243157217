// Package main provides the chunkgraph CLI: batch chunking and graph
// ingestion plus operational commands over the resulting graph.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dtorres/chunkgraph/internal/config"
	"github.com/dtorres/chunkgraph/internal/embedding"
	"github.com/dtorres/chunkgraph/internal/graph"
	"github.com/dtorres/chunkgraph/internal/logging"
	"github.com/dtorres/chunkgraph/internal/pipeline"
)

var (
	configDir    string
	logDir       string
	cleanTarget  string
	cleanAll     bool
	searchTopK   int
	searchHybrid bool
)

var rootCmd = &cobra.Command{
	Use:   "chunkgraph",
	Short: "Multi-strategy document chunking and graph ingestion",
	Long: `chunkgraph runs text-splitting strategies over configured documents,
embeds every chunk, and writes documents, chunks, and sequential links
into a Neo4j graph.

Environment variables:
  NEO4J_URI       Neo4j connection URI (required)
  NEO4J_USERNAME  Neo4j username (required)
  NEO4J_PASSWORD  Neo4j password (required)
  OPENAI_API_KEY  OpenAI API key for embeddings (required)
  NEO4J_DATABASE  Neo4j database name (default: neo4j)`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all splitter configurations against the graph",
	Long: `Loads every *.yaml configuration from the config directory and runs
them in the fixed strategy order: fixed-size, character, sentence,
token, markdown.

Each configuration splits its documents, embeds the chunks, and writes
Document and TextChunk nodes with FROM_DOCUMENT and NEXT_CHUNK edges.
A failing configuration is logged and skipped; authentication failures
and an unreachable graph abort the whole batch.`,
	RunE: runBatch,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify Neo4j connectivity",
	RunE:  runCheck,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print graph statistics",
	RunE:  runStats,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete chunk graphs",
	Long: `Deletes TextChunk nodes for one splitter strategy (--splitter), or all
TextChunk and Document nodes (--all).`,
	RunE: runClean,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Vector similarity search over stored chunks",
	Long: `Embeds the query and searches the chunk vector index. With --hybrid,
fulltext relevance over chunk text is blended in: both indexes are
queried and each chunk keeps its best normalized score.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "configs", "configs", "directory with splitter configuration files")
	rootCmd.PersistentFlags().StringVar(&logDir, "logs", logging.DefaultDir, "directory for run log files")

	cleanCmd.Flags().StringVar(&cleanTarget, "splitter", "", "splitter strategy to delete chunks for")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "delete all chunks and documents")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 5, "number of results")
	searchCmd.Flags().BoolVar(&searchHybrid, "hybrid", false, "blend fulltext relevance with vector similarity")

	rootCmd.AddCommand(runCmd, checkCmd, statsCmd, cleanCmd, searchCmd)
}

func main() {
	// Load .env if present (local development), ignore if missing.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	logger, closeLog, err := logging.NewRunLogger(logDir)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := config.LoadSettings()
	if err != nil {
		logger.Error("Configuration error", "error", err)
		return err
	}

	configs, err := config.LoadDir(configDir)
	if err != nil {
		logger.Error("Configuration error", "error", err)
		return err
	}
	logger.Info("Loaded configurations", "count", len(configs), "dir", configDir)

	store, err := graph.NewStore(ctx, settings)
	if err != nil {
		logger.Error("Graph store unavailable", "error", err)
		return err
	}
	defer store.Close(ctx)

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Error("Index setup failed", "error", err)
		return err
	}

	client, err := embedding.NewClient(settings.OpenAIKey)
	if err != nil {
		logger.Error("Embedding client setup failed", "error", err)
		return err
	}
	embedder := embedding.NewEmbedder(client, 0)

	runner := pipeline.NewRunner(embedder, store, logger)
	result := runner.Run(ctx, configs)

	fmt.Println()
	fmt.Println("Batch complete")
	for _, cr := range result.Configs {
		status := "ok"
		if cr.Err != nil {
			status = cr.Err.Error()
		}
		fmt.Printf("  %-20s documents=%d chunks=%d duration=%s status=%s\n",
			cr.Config, cr.Documents, cr.Chunks, cr.Duration.Round(time.Millisecond), status)
	}
	fmt.Printf("Total: %s\n", result.Duration.Round(time.Millisecond))

	if !result.OK() {
		if result.Fatal != nil {
			return fmt.Errorf("batch aborted: %w", result.Fatal)
		}
		return fmt.Errorf("batch finished with errors")
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	fmt.Printf("Connecting to %s...\n", settings.Neo4jURI)
	store, err := graph.NewStore(ctx, settings)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	if err := store.Ping(ctx); err != nil {
		return err
	}
	fmt.Println("Neo4j connection OK")
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	store, err := graph.NewStore(ctx, settings)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	stats, err := store.CollectStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Nodes:         %d\n", stats.Nodes)
	fmt.Printf("Relationships: %d\n", stats.Relationships)
	fmt.Println("Labels:")
	for label, count := range stats.Labels {
		fmt.Printf("  %-20s %d\n", label, count)
	}
	fmt.Println("Relationship types:")
	for rel, count := range stats.RelTypes {
		fmt.Printf("  %-20s %d\n", rel, count)
	}
	fmt.Println("Chunks per splitter:")
	for name, count := range stats.Splitters {
		fmt.Printf("  %-20s %d\n", name, count)
	}
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if !cleanAll && cleanTarget == "" {
		return fmt.Errorf("specify --splitter <strategy> or --all")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	store, err := graph.NewStore(ctx, settings)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	var deleted int64
	if cleanAll {
		deleted, err = store.CleanAll(ctx)
	} else {
		deleted, err = store.CleanSplitter(ctx, cleanTarget)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d nodes\n", deleted)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	store, err := graph.NewStore(ctx, settings)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	client, err := embedding.NewClient(settings.OpenAIKey)
	if err != nil {
		return err
	}
	embedder := embedding.NewEmbedder(client, 0)

	vectors, err := embedder.GenerateEmbeddings(ctx, []string{query})
	if err != nil {
		return err
	}

	var hits []graph.ScoredChunk
	if searchHybrid {
		hits, err = store.SearchChunksHybrid(ctx, vectors[0], query, searchTopK)
	} else {
		hits, err = store.SearchChunks(ctx, vectors[0], searchTopK)
	}
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("No results")
		return nil
	}
	for i, hit := range hits {
		fmt.Printf("%d. [%.4f] %s / %s #%d\n", i+1, hit.Score, hit.Chunk.Document, hit.Chunk.Splitter, hit.Chunk.Index)
		if hit.Chunk.HeaderPath != "" {
			fmt.Printf("   %s\n", hit.Chunk.HeaderPath)
		}
		fmt.Printf("   %s\n", snippet(hit.Chunk.Text, 160))
	}
	return nil
}

// snippet truncates text for terminal output.
func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
