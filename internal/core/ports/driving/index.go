package driving

import (
	"context"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
)

// IndexService is the sole entry point for obtaining a queryable index.
// It hides the build-vs-load branch from callers.
type IndexService interface {
	// GetOrCreate returns the persisted index, building it from the
	// configured source files when none exists or force is true.
	GetOrCreate(ctx context.Context, force bool) (driven.VectorIndex, error)
}

// Retriever produces context chunks for a query against a bound index
// with a fixed result count.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]domain.ScoredChunk, error)
}
