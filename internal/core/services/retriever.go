package services

import (
	"context"
	"strings"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driving"
)

// Ensure Retriever implements the interface.
var _ driving.Retriever = (*Retriever)(nil)

// Retriever performs similarity search against a bound index with a
// fixed result count.
type Retriever struct {
	index driven.VectorIndex
	k     int
}

// NewRetriever binds a retriever to an index. k <= 0 falls back to 3.
func NewRetriever(index driven.VectorIndex, k int) *Retriever {
	if k <= 0 {
		k = 3
	}
	return &Retriever{index: index, k: k}
}

// Retrieve returns the k chunks most similar to the query.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]domain.ScoredChunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	return r.index.SimilaritySearch(ctx, query, r.k, driven.SearchOptions{})
}
