package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoredChunkExposesChunkFields(t *testing.T) {
	sc := ScoredChunk{
		Chunk: Chunk{
			ID:      "c1",
			Source:  "a.pdf",
			Page:    2,
			Content: "insulin basics",
		},
		Score: 0.9,
	}

	assert.Equal(t, "c1", sc.ID)
	assert.Equal(t, "a.pdf", sc.Source)
	assert.Equal(t, 2, sc.Page)
	assert.Equal(t, "insulin basics", sc.Content)
	assert.Equal(t, 0.9, sc.Score)
}
