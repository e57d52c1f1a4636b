// Package chunker splits loaded document text into overlapping windows
// suitable for embedding. Splitting is a pure function: the same
// documents and parameters always produce the same chunks.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
)

// DefaultChunkSize is the default window size in bytes.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of bytes shared between
// consecutive chunks.
const DefaultChunkOverlap = 50

// Separator groups tried in order when ending a chunk: paragraph break,
// sentence end, word gap.
var separatorGroups = [][]string{
	{"\n\n"},
	{". ", "! ", "? ", "\n"},
	{" "},
}

// Chunker cuts documents into chunks of at most size bytes, each
// overlapping its predecessor by overlap bytes.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker. Non-positive sizes fall back to the defaults
// and an overlap reaching the chunk size is clamped to a quarter of it.
func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= size {
		overlap = size / 4
	}
	return &Chunker{size: size, overlap: overlap}
}

// ChunkSize returns the configured window size.
func (c *Chunker) ChunkSize() int { return c.size }

// ChunkOverlap returns the configured overlap.
func (c *Chunker) ChunkOverlap() int { return c.overlap }

// Split produces the chunk sequence for the given documents, in
// document order. Chunks never span two documents.
func (c *Chunker) Split(docs []domain.Document) []domain.Chunk {
	var chunks []domain.Chunk
	for _, doc := range docs {
		chunks = append(chunks, c.splitDocument(doc)...)
	}
	return chunks
}

func (c *Chunker) splitDocument(doc domain.Document) []domain.Chunk {
	content := doc.Content
	n := len(content)
	if n == 0 {
		return nil
	}

	var out []domain.Chunk
	start := 0
	position := 0

	for start < n {
		end := start + c.size
		if end >= n {
			end = n
		} else {
			end = c.cutPoint(content, start, end)
		}

		out = append(out, domain.Chunk{
			Source:   doc.Source,
			Page:     doc.Page,
			Position: position,
			Start:    start,
			End:      end,
			Content:  content[start:end],
		})
		position++

		if end == n {
			break
		}
		start = end - c.overlap
	}

	return out
}

// cutPoint picks where to end a chunk that does not finish the document.
// It prefers, in order, a paragraph break, a sentence end and a word gap
// inside the window, and falls back to a hard cut pulled back to a UTF-8
// rune start. Every candidate must leave more than overlap bytes of
// progress so the next chunk always advances.
func (c *Chunker) cutPoint(content string, start, max int) int {
	window := content[start:max]
	min := c.overlap + 1

	for _, group := range separatorGroups {
		best := -1
		for _, sep := range group {
			idx := strings.LastIndex(window, sep)
			if idx < 0 {
				continue
			}
			// Cut after the separator so it stays with the chunk it ends.
			if cut := idx + len(sep); cut >= min && cut > best {
				best = cut
			}
		}
		if best > 0 {
			return start + best
		}
	}

	cut := max
	for cut > start && !utf8.RuneStart(content[cut]) {
		cut--
	}
	if cut-start < min {
		// Pulling back to a rune start would stall the walk. Advance
		// to the next rune start instead, overshooting the window by a
		// few bytes rather than splitting a rune.
		cut = start + min
		for cut < len(content) && !utf8.RuneStart(content[cut]) {
			cut++
		}
	}
	return cut
}
