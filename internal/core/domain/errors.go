package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrIndexNotFound indicates no completed index is persisted at the
	// requested directory.
	ErrIndexNotFound = errors.New("index not found")

	// ErrNoDocuments indicates a build was attempted with nothing to
	// index: either no source file survived loading or chunking
	// produced no chunks.
	ErrNoDocuments = errors.New("no documents to index")

	// ErrStorage indicates an I/O failure while persisting or reading
	// the index. It is never retried.
	ErrStorage = errors.New("index storage failure")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured. Nothing can be indexed or queried without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the language model provider is not
	// configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
