// Package config loads the typed application configuration from a TOML
// file and applies defaults for everything left unset.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Default values matching the shipped knowledge-base deployment.
const (
	DefaultIndexDir       = "chroma_db"
	DefaultChunkSize      = 500
	DefaultChunkOverlap   = 50
	DefaultRetrieverK     = 3
	DefaultLLMModel       = "gpt-4o-mini"
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultMaxWebResults  = 3
)

// Config is the full application configuration.
type Config struct {
	// PDFFiles is the ordered list of source document paths.
	PDFFiles []string `toml:"pdf_files"`

	// IndexDir is the directory holding the persisted vector index.
	IndexDir string `toml:"chroma_directory"`

	Chunking  Chunking  `toml:"chunking"`
	Retriever Retriever `toml:"retriever"`
	Embedding Embedding `toml:"embedding"`
	LLM       LLM       `toml:"llm"`
	Search    Search    `toml:"search"`
}

// Chunking controls how page text is split before embedding.
type Chunking struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
}

// Retriever controls similarity search at answer time.
type Retriever struct {
	// K is the number of chunks retrieved per question.
	K int `toml:"k"`
}

// Embedding selects the embedding model.
type Embedding struct {
	Model string `toml:"model"`
}

// LLM selects the language model and sampling temperature.
type LLM struct {
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
}

// Search controls the web search fallback.
type Search struct {
	// MaxResults caps the number of web results folded into an answer.
	MaxResults int `toml:"max_results"`
}

// Default returns a configuration with every field set to its default.
func Default() Config {
	return Config{
		IndexDir: DefaultIndexDir,
		Chunking: Chunking{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
		},
		Retriever: Retriever{K: DefaultRetrieverK},
		Embedding: Embedding{Model: DefaultEmbeddingModel},
		LLM:       LLM{Model: DefaultLLMModel, Temperature: 0},
		Search:    Search{MaxResults: DefaultMaxWebResults},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is
// an error; an empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the parameter combinations the pipeline depends on.
func (c Config) Validate() error {
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("chunking.chunk_size must be positive, got %d", c.Chunking.ChunkSize)
	}
	if c.Chunking.ChunkOverlap < 0 {
		return fmt.Errorf("chunking.chunk_overlap must not be negative, got %d", c.Chunking.ChunkOverlap)
	}
	if c.Chunking.ChunkOverlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("chunking.chunk_overlap (%d) must be smaller than chunk_size (%d)",
			c.Chunking.ChunkOverlap, c.Chunking.ChunkSize)
	}
	if c.Retriever.K <= 0 {
		return fmt.Errorf("retriever.k must be positive, got %d", c.Retriever.K)
	}
	if c.IndexDir == "" {
		return fmt.Errorf("chroma_directory must not be empty")
	}
	return nil
}
