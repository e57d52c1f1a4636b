// Package cli implements the command-line interface. Each command
// lives in its own file and registers itself on the root command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	openaiembed "github.com/KevinNourian/HealthAssistant/internal/adapters/driven/embedding/openai"
	"github.com/KevinNourian/HealthAssistant/internal/adapters/driven/index/sqlite"
	openaillm "github.com/KevinNourian/HealthAssistant/internal/adapters/driven/llm/openai"
	"github.com/KevinNourian/HealthAssistant/internal/adapters/driven/websearch/serpapi"
	"github.com/KevinNourian/HealthAssistant/internal/chunker"
	"github.com/KevinNourian/HealthAssistant/internal/config"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driving"
	"github.com/KevinNourian/HealthAssistant/internal/core/services"
	"github.com/KevinNourian/HealthAssistant/internal/loaders/pdf"
	"github.com/KevinNourian/HealthAssistant/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "healthassistant",
	Short: "Question answering over a personal PDF knowledge base",
	Long: `healthassistant answers questions against a set of PDF documents.

Documents are split into overlapping chunks, embedded and persisted in
a local vector index. Questions are answered from the most similar
chunks; when the documents do not contain the answer, the assistant
falls back to a web search.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app holds the wired services for one command invocation.
type app struct {
	cfg      config.Config
	index    driven.VectorIndex
	answerer driving.AnswerService
}

// loadConfig reads and validates the configuration for the current
// invocation.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp wires the full service graph and opens the index, building it
// when force is true or no persisted index exists. progress may be nil.
func newApp(ctx context.Context, force bool, progress driven.BuildProgress) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey: apiKey,
		Model:  cfg.Embedding.Model,
	})
	if err != nil {
		return nil, err
	}

	var storeOpts []sqlite.Option
	if progress != nil {
		storeOpts = append(storeOpts, sqlite.WithProgress(progress))
	}
	store := sqlite.NewStore(embedder, storeOpts...)

	indexer := services.NewIndexer(
		pdf.New(),
		chunker.New(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap),
		store,
		cfg.PDFFiles,
		cfg.IndexDir,
	)

	index, err := indexer.GetOrCreate(ctx, force)
	if err != nil {
		if errors.Is(err, pdf.ErrToolMissing) {
			return nil, fmt.Errorf("%w\n\n%s", err, pdf.InstallInstructions())
		}
		return nil, err
	}

	llm, err := openaillm.NewLLMService(openaillm.Config{
		APIKey: apiKey,
		Model:  cfg.LLM.Model,
	})
	if err != nil {
		index.Close()
		return nil, err
	}

	var searcher driven.WebSearcher
	if serpKey := os.Getenv("SERPAPI_API_KEY"); serpKey != "" {
		searcher, err = serpapi.NewClient(serpapi.Config{APIKey: serpKey})
		if err != nil {
			index.Close()
			return nil, err
		}
	} else {
		logger.Warn("SERPAPI_API_KEY not set, web search fallback disabled")
	}

	answerer := services.NewAnswerer(
		services.NewRetriever(index, cfg.Retriever.K),
		llm,
		searcher,
		index,
		services.AnswererConfig{
			MaxWebResults:           cfg.Search.MaxResults,
			Temperature:             cfg.LLM.Temperature,
			TreatSearchErrorAsEmpty: true,
		},
	)

	return &app{cfg: cfg, index: index, answerer: answerer}, nil
}

// Close releases the index handle.
func (a *app) Close() {
	if a.index != nil {
		_ = a.index.Close()
	}
}
