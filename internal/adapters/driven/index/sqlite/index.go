package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
)

var _ driven.VectorIndex = (*Index)(nil)

// defaultK bounds a similarity search when the caller passes k <= 0.
const defaultK = 10

// Index is an open handle on a persisted index.
type Index struct {
	db       *sql.DB
	embedder driven.EmbeddingService
	count    int
}

// SimilaritySearch embeds the query and returns the k most similar
// chunks by cosine similarity, most similar first.
func (ix *Index) SimilaritySearch(ctx context.Context, query string, k int, opts driven.SearchOptions) ([]domain.ScoredChunk, error) {
	if ix.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if k <= 0 {
		k = defaultK
	}

	queryVec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := ix.queryChunks(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var scored []domain.ScoredChunk
	for rows.Next() {
		var ch domain.Chunk
		var blob []byte
		if err := rows.Scan(&ch.ID, &ch.Source, &ch.Page, &ch.Position, &ch.Start, &ch.End, &ch.Content, &blob); err != nil {
			return nil, fmt.Errorf("%w: scan chunk: %v", domain.ErrStorage, err)
		}
		ch.Embedding = blobToVector(blob)
		scored = append(scored, domain.ScoredChunk{
			Chunk: ch,
			Score: cosineSimilarity(queryVec, ch.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

func (ix *Index) queryChunks(ctx context.Context, opts driven.SearchOptions) (*sql.Rows, error) {
	q := `SELECT id, source, page, position, start_offset, end_offset, content, embedding FROM chunks`
	if opts.Source != "" {
		return ix.db.QueryContext(ctx, q+` WHERE source = ?`, opts.Source)
	}
	return ix.db.QueryContext(ctx, q)
}

// Len returns the number of chunks in the index.
func (ix *Index) Len() int {
	return ix.count
}

// Close releases the database handle.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// vectorToBlob encodes a vector as little-endian float32 bytes.
func vectorToBlob(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// blobToVector decodes a little-endian float32 blob.
func blobToVector(blob []byte) []float32 {
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec
}

// cosineSimilarity computes the cosine of the angle between two
// vectors. Mismatched lengths or zero norms score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
