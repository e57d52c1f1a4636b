package driving

import (
	"context"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
)

// AnswerService answers questions against the knowledge base with a web
// search fallback.
type AnswerService interface {
	// Answer routes a question through retrieval and, when retrieval
	// is insufficient, web search. It never fails: errors are
	// converted into an error-labelled Answer.
	Answer(ctx context.Context, question string) domain.Answer

	// SummarizeDocument produces a summary of a single source file
	// from its indexed chunks.
	SummarizeDocument(ctx context.Context, source string) (string, error)
}
