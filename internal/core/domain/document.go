package domain

// Document is one loaded page of source text. It is immutable once
// produced by a loader.
type Document struct {
	// Source is the origin identifier, normally the PDF file path.
	Source string

	// Page is the 1-based page number within the source file.
	Page int

	// Content is the extracted page text.
	Content string
}

// Chunk is a contiguous substring of a Document prepared for embedding.
// Chunks never span two source documents.
type Chunk struct {
	// ID is the storage identifier. It is assigned when the chunk is
	// persisted; chunker output leaves it empty.
	ID string

	// Source is the originating Document's source identifier.
	Source string

	// Page is the originating Document's page number.
	Page int

	// Position is the ordinal position within the source page.
	Position int

	// Start and End are byte offsets of Content within the page text.
	Start int
	End   int

	// Content is the chunk text, at most chunk_size bytes.
	Content string

	// Embedding is the vector representation. Empty until the chunk
	// has been embedded.
	Embedding []float32
}

// ScoredChunk is a similarity search result: a chunk together with its
// similarity to the query.
type ScoredChunk struct {
	Chunk

	// Score is the cosine similarity against the query embedding.
	Score float64
}

// WebResult is a single web search hit used by the fallback path.
type WebResult struct {
	Title   string
	Snippet string
	URL     string
}
