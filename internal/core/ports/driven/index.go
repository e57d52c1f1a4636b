package driven

import (
	"context"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
)

// IndexStore owns persisted indexes on disk, keyed by directory path.
//
// The only mutation it supports is a full build; there are no update or
// delete operations. Concurrent builds against the same directory are
// not supported.
type IndexStore interface {
	// Exists reports whether a completed index is persisted at dir.
	// A build that failed partway through never counts as existing.
	Exists(dir string) bool

	// Build embeds every chunk, persists the chunk/vector pairs to dir
	// and returns a queryable handle. It fails with
	// domain.ErrNoDocuments when chunks is empty and propagates
	// embedding provider errors unretried. Persistence failures wrap
	// domain.ErrStorage. A failed build leaves no completed marker.
	Build(ctx context.Context, chunks []domain.Chunk, dir string) (VectorIndex, error)

	// Load opens a previously persisted index. It fails with
	// domain.ErrIndexNotFound when no completed index is present.
	Load(dir string) (VectorIndex, error)
}

// SearchOptions restricts a similarity search.
type SearchOptions struct {
	// Source, when non-empty, limits results to chunks originating
	// from that source identifier.
	Source string
}

// VectorIndex is a queryable handle over one persisted index.
// Reads are safe to issue concurrently.
type VectorIndex interface {
	// SimilaritySearch embeds query with the provider bound at build
	// or load time and returns the k most similar chunks, most similar
	// first.
	SimilaritySearch(ctx context.Context, query string, k int, opts SearchOptions) ([]domain.ScoredChunk, error)

	// Len returns the number of stored chunks.
	Len() int

	// Close releases the underlying storage handle.
	Close() error
}

// BuildProgress is invoked during Build after each batch of chunks has
// been embedded. Used to drive progress reporting; may be nil.
type BuildProgress func(done, total int)
