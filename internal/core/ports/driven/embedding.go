package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The same provider and model must be used when building an index and
// when querying it. That consistency is the caller's responsibility;
// the pipeline records the model name alongside the index but does not
// validate it at query time.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. More
	// efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
