package driven

import (
	"context"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
)

// WebSearcher issues a query to an external search API.
//
// Provider and network failures are returned as errors; whether an
// error is treated the same as zero results is a policy decision made
// by the caller, not by the adapter.
type WebSearcher interface {
	// Search returns up to maxResults results in provider ranking
	// order, skipping entries that lack a title and a snippet.
	Search(ctx context.Context, query string, maxResults int) ([]domain.WebResult, error)
}
