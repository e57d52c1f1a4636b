package chunker

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
)

func doc(source string, page int, content string) domain.Document {
	return domain.Document{Source: source, Page: page, Content: content}
}

// buildText produces deterministic prose with sentence structure.
func buildText(sentences int) string {
	var b strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&b, "Sentence number %d carries some plain filler text. ", i)
	}
	return b.String()
}

func TestNew_ClampsParameters(t *testing.T) {
	c := New(0, -1)
	assert.Equal(t, DefaultChunkSize, c.ChunkSize())
	assert.Equal(t, DefaultChunkOverlap, c.ChunkOverlap())

	// Overlap reaching the size is clamped, not rejected.
	c = New(100, 100)
	assert.Equal(t, 25, c.ChunkOverlap())
}

func TestSplit_EmptyDocument(t *testing.T) {
	chunks := New(500, 50).Split([]domain.Document{doc("a.pdf", 1, "")})
	assert.Empty(t, chunks)
}

func TestSplit_ShortDocumentSingleChunk(t *testing.T) {
	chunks := New(500, 50).Split([]domain.Document{doc("a.pdf", 1, "short text")})
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Position)
	assert.Equal(t, "a.pdf", chunks[0].Source)
	assert.Equal(t, 1, chunks[0].Page)
}

func TestSplit_ChunkBounds(t *testing.T) {
	const size, overlap = 120, 20
	chunks := New(size, overlap).Split([]domain.Document{doc("a.pdf", 1, buildText(40))})
	require.NotEmpty(t, chunks)

	for i, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Content), size, "chunk %d exceeds size", i)
		assert.Equal(t, ch.End-ch.Start, len(ch.Content))
	}
}

func TestSplit_OverlapInvariant(t *testing.T) {
	const size, overlap = 120, 20
	text := buildText(40)
	chunks := New(size, overlap).Split([]domain.Document{doc("a.pdf", 1, text)})
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		got := prev.End - cur.Start
		assert.Greater(t, got, 0, "chunks %d/%d do not overlap", i-1, i)
		assert.LessOrEqual(t, got, overlap, "chunks %d/%d overlap too much", i-1, i)
		// The overlap region is literally shared text.
		assert.Equal(t, text[cur.Start:prev.End], prev.Content[len(prev.Content)-got:])
	}
}

func TestSplit_NoOverlapWhenZero(t *testing.T) {
	chunks := New(100, 0).Split([]domain.Document{doc("a.pdf", 1, buildText(30))})
	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		assert.Equal(t, chunks[i-1].End, chunks[i].Start)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	docs := []domain.Document{
		doc("a.pdf", 1, buildText(25)),
		doc("a.pdf", 2, buildText(17)),
	}
	c := New(150, 30)

	first := c.Split(docs)
	second := c.Split(docs)
	assert.Equal(t, first, second)
}

func TestSplit_NeverSpansDocuments(t *testing.T) {
	docs := []domain.Document{
		doc("a.pdf", 1, buildText(10)),
		doc("b.pdf", 1, buildText(10)),
	}
	chunks := New(100, 20).Split(docs)

	for _, ch := range chunks {
		text := docs[0].Content
		if ch.Source == "b.pdf" {
			text = docs[1].Content
		}
		assert.Equal(t, text[ch.Start:ch.End], ch.Content)
	}

	// Document order is preserved.
	sawB := false
	for _, ch := range chunks {
		if ch.Source == "b.pdf" {
			sawB = true
		} else {
			assert.False(t, sawB, "a.pdf chunk after b.pdf chunks")
		}
	}
}

func TestSplit_PrefersParagraphBoundary(t *testing.T) {
	para1 := strings.Repeat("x", 60)
	para2 := strings.Repeat("y", 200)
	text := para1 + "\n\n" + para2

	chunks := New(100, 10).Split([]domain.Document{doc("a.pdf", 1, text)})
	require.Greater(t, len(chunks), 1)
	// The first cut lands on the paragraph break, not mid-paragraph.
	assert.Equal(t, para1+"\n\n", chunks[0].Content)
}

func TestSplit_PrefersSentenceBoundary(t *testing.T) {
	text := "First sentence here. Second sentence is quite a bit longer than the first one."
	chunks := New(40, 5).Split([]domain.Document{doc("a.pdf", 1, text)})
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, "First sentence here. ", chunks[0].Content)
}

func TestSplit_HardCutWithoutBoundaries(t *testing.T) {
	text := strings.Repeat("z", 250)
	chunks := New(100, 10).Split([]domain.Document{doc("a.pdf", 1, text)})

	require.NotEmpty(t, chunks)
	assert.Equal(t, 100, len(chunks[0].Content))
	for _, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Content), 100)
	}
}

func TestSplit_HardCutKeepsRunesIntact(t *testing.T) {
	text := strings.Repeat("ä", 200) // 2 bytes per rune
	chunks := New(101, 10).Split([]domain.Document{doc("a.pdf", 1, text)})

	require.NotEmpty(t, chunks)
	for i, ch := range chunks {
		assert.True(t, strings.HasPrefix(ch.Content, "ä") || ch.Content == "",
			"chunk %d starts mid-rune", i)
	}
}

func TestSplit_HardCutKeepsRunesIntactUnderTightOverlap(t *testing.T) {
	// Window end lands mid-rune and pulling back to the previous rune
	// start would leave less than overlap+1 bytes of progress: the cut
	// must move forward to the next rune start, never split a rune.
	text := strings.Repeat("ä", 8) // 16 bytes, rune starts at even offsets
	chunks := New(5, 4).Split([]domain.Document{doc("a.pdf", 1, text)})

	require.NotEmpty(t, chunks)
	for i, ch := range chunks {
		assert.True(t, utf8.ValidString(ch.Content), "chunk %d %q is not valid UTF-8", i, ch.Content)
	}
}

func TestSplit_BuildScenario(t *testing.T) {
	// Two pages, 1200 bytes total, size 500 overlap 50 must yield
	// at least 3 chunks of at most 500 bytes each.
	docs := []domain.Document{
		doc("a.pdf", 1, buildText(14)[:700]),
		doc("a.pdf", 2, buildText(10)[:500]),
	}
	chunks := New(500, 50).Split(docs)

	assert.GreaterOrEqual(t, len(chunks), 3)
	for _, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Content), 500)
	}
}
