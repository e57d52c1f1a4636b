package driven

import (
	"context"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
)

// DocumentLoader extracts page-level text from a single source file.
//
// Loading a batch of files, including the skip-and-warn handling of
// missing or corrupt files, is the Indexer's job; a loader only knows
// how to read one file.
type DocumentLoader interface {
	// Load reads the file at path and returns one Document per page,
	// in page order.
	Load(ctx context.Context, path string) ([]domain.Document, error)
}

// CommandRunner executes an external command and returns its stdout.
// It exists so adapters that shell out (pdftotext) can be tested
// without the binary installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
