package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/KevinNourian/HealthAssistant/internal/chunker"
	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driving"
	"github.com/KevinNourian/HealthAssistant/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.IndexService = (*Indexer)(nil)

// Indexer owns the build-or-load decision for the vector index.
type Indexer struct {
	loader   driven.DocumentLoader
	splitter *chunker.Chunker
	store    driven.IndexStore
	files    []string
	indexDir string
}

// NewIndexer creates an indexer over the given source files.
func NewIndexer(
	loader driven.DocumentLoader,
	splitter *chunker.Chunker,
	store driven.IndexStore,
	files []string,
	indexDir string,
) *Indexer {
	return &Indexer{
		loader:   loader,
		splitter: splitter,
		store:    store,
		files:    files,
		indexDir: indexDir,
	}
}

// GetOrCreate loads the persisted index when one exists, otherwise
// builds it from the configured source files. force always rebuilds.
func (ix *Indexer) GetOrCreate(ctx context.Context, force bool) (driven.VectorIndex, error) {
	if !force && ix.store.Exists(ix.indexDir) {
		logger.Debug("Reusing persisted index at %s", ix.indexDir)
		return ix.store.Load(ix.indexDir)
	}
	return ix.build(ctx)
}

// build loads every configured file, splits the pages into chunks and
// persists a fresh index. Files that fail to load are skipped with a
// warning; the build fails only when no file yields any text.
func (ix *Indexer) build(ctx context.Context) (driven.VectorIndex, error) {
	logger.Section("Index Build")

	var docs []domain.Document
	var loadErrs []error
	for _, path := range ix.files {
		loaded, err := ix.loader.Load(ctx, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			loadErrs = append(loadErrs, err)
			continue
		}
		logger.Debug("Loaded %d pages from %s", len(loaded), path)
		docs = append(docs, loaded...)
	}
	if len(docs) == 0 {
		// Surface the per-file causes so callers can match on them.
		return nil, fmt.Errorf("no readable source files: %w",
			errors.Join(domain.ErrNoDocuments, errors.Join(loadErrs...)))
	}

	chunks := ix.splitter.Split(docs)
	logger.Info("Split %d pages into %d chunks", len(docs), len(chunks))

	return ix.store.Build(ctx, chunks, ix.indexDir)
}
