// Package sqlite persists the vector index in a SQLite database, one
// directory per index. Similarity search is an exact cosine scan over
// all stored vectors.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/KevinNourian/HealthAssistant/internal/adapters/driven/index/sqlite/migrations"
	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
	"github.com/KevinNourian/HealthAssistant/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// dbFileName is the database file inside an index directory.
const dbFileName = "index.db"

// DefaultEmbedBatchSize is the number of chunks sent to the embedding
// provider per request during a build.
const DefaultEmbedBatchSize = 64

// Store builds and loads persisted indexes.
type Store struct {
	embedder  driven.EmbeddingService
	batchSize int
	progress  driven.BuildProgress
}

// Option configures the store.
type Option func(*Store)

// WithEmbedBatchSize sets how many chunks are embedded per provider call.
func WithEmbedBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithProgress sets a callback invoked after each embedded batch.
func WithProgress(fn driven.BuildProgress) Option {
	return func(s *Store) {
		s.progress = fn
	}
}

// NewStore creates a store bound to an embedding provider. The same
// provider embeds chunks at build time and queries at search time.
func NewStore(embedder driven.EmbeddingService, opts ...Option) *Store {
	s := &Store{
		embedder:  embedder,
		batchSize: DefaultEmbedBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exists reports whether a completed index is persisted at dir.
func (s *Store) Exists(dir string) bool {
	dbPath := filepath.Join(dir, dbFileName)
	if _, err := os.Stat(dbPath); err != nil {
		return false
	}

	db, err := openDB(dbPath)
	if err != nil {
		return false
	}
	defer db.Close()

	_, _, err = readMeta(db)
	return err == nil
}

// Build embeds every chunk and persists the index at dir. The chunk
// rows and the completion marker are committed in one transaction, so
// a failed build never satisfies Exists.
func (s *Store) Build(ctx context.Context, chunks []domain.Chunk, dir string) (driven.VectorIndex, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("build index: %w", domain.ErrNoDocuments)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create index directory: %v", domain.ErrStorage, err)
	}
	dbPath := filepath.Join(dir, dbFileName)
	removeDatabase(dbPath)

	vectors, err := s.embedAll(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", domain.ErrStorage, err)
	}
	if err := migrate(db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	if err := persist(ctx, db, chunks, vectors, s.embedder.ModelName()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	logger.Info("Built index with %d chunks at %s", len(chunks), dir)
	return &Index{db: db, embedder: s.embedder, count: len(chunks)}, nil
}

// Load opens a previously persisted index at dir.
func (s *Store) Load(dir string) (driven.VectorIndex, error) {
	dbPath := filepath.Join(dir, dbFileName)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, domain.ErrIndexNotFound)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", domain.ErrStorage, err)
	}

	count, model, err := readMeta(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", dir, domain.ErrIndexNotFound)
	}

	if s.embedder != nil && model != s.embedder.ModelName() {
		logger.Warn("Index at %s was built with embedding model %q, querying with %q",
			dir, model, s.embedder.ModelName())
	}

	logger.Info("Loaded index with %d chunks from %s", count, dir)
	return &Index{db: db, embedder: s.embedder, count: count}, nil
}

// embedAll embeds chunk contents batch by batch, reporting progress.
func (s *Store) embedAll(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	total := len(chunks)
	vectors := make([][]float32, 0, total)

	for start := 0; start < total; start += s.batchSize {
		end := start + s.batchSize
		if end > total {
			end = total
		}

		texts := make([]string, 0, end-start)
		for _, ch := range chunks[start:end] {
			texts = append(texts, ch.Content)
		}

		batch, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedding provider returned %d vectors for %d texts", len(batch), len(texts))
		}
		vectors = append(vectors, batch...)

		if s.progress != nil {
			s.progress(end, total)
		}
	}

	return vectors, nil
}

// persist writes all chunk rows plus the completion marker atomically.
func persist(ctx context.Context, db *sql.DB, chunks []domain.Chunk, vectors [][]float32, model string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, source, page, position, start_offset, end_offset, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %v", err)
	}
	defer stmt.Close()

	for i, ch := range chunks {
		id := ch.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx,
			id, ch.Source, ch.Page, ch.Position, ch.Start, ch.End, ch.Content, vectorToBlob(vectors[i]),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert chunk %d: %v", i, err)
		}
	}

	dims := 0
	if len(vectors) > 0 {
		dims = len(vectors[0])
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO index_meta (id, chunk_count, dimensions, embedding_model, created_at)
		VALUES (1, ?, ?, ?, ?)
	`, len(chunks), dims, model, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("write completion marker: %v", err)
	}

	return tx.Commit()
}

// openDB opens the database with WAL mode for concurrent readers.
func openDB(path string) (*sql.DB, error) {
	return sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
}

// removeDatabase deletes the database file and its WAL companions,
// clearing stale state before a (re)build.
func removeDatabase(path string) {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		_ = os.Remove(p)
	}
}

// readMeta returns the chunk count and embedding model from the
// completion marker, or an error when no completed build is present.
func readMeta(db *sql.DB) (count int, model string, err error) {
	row := db.QueryRow(`SELECT chunk_count, embedding_model FROM index_meta WHERE id = 1`)
	if err := row.Scan(&count, &model); err != nil {
		return 0, "", err
	}
	return count, model, nil
}

// migrate runs all pending migrations.
func migrate(db *sql.DB, fsys embed.FS) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %v", err)
	}

	var currentVersion int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %v", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %v", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %v", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %v", name, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("recording migration %s: %v", name, err)
		}
	}

	return nil
}
