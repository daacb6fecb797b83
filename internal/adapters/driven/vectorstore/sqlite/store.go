// Package sqlite provides a SQLite-backed vector store with brute-force
// cosine similarity search.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
	"github.com/custodia-labs/specforge/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// dbFileName is the on-disk database file inside the data directory.
const dbFileName = "knowledge.db"

// schema holds the embedded chunks. Embeddings are stored as little-endian
// float32 blobs, metadata as JSON text.
const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id        TEXT PRIMARY KEY,
	content   TEXT NOT NULL,
	position  INTEGER NOT NULL,
	metadata  TEXT NOT NULL DEFAULT '{}',
	embedding BLOB
)`

// Store persists embedded chunks in SQLite and serves nearest-neighbour
// search by scanning all rows. The database file is created lazily on
// first write so a fresh install carries no state.
//
// The mutex guards the database handle lifecycle: Clear takes the write
// lock to close and delete the file while Upsert, Search and Count hold
// the read lock. SQLite itself serialises row-level access.
type Store struct {
	mu       sync.RWMutex
	db       *sql.DB
	dataDir  string
	embedder driven.EmbeddingService
}

// NewStore creates a vector store rooted at dataDir. The embedder may be
// nil, in which case Upsert and Search report the capability as missing.
// No file is touched until the first write.
func NewStore(dataDir string, embedder driven.EmbeddingService) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".specforge", "data")
	}

	return &Store{
		dataDir:  dataDir,
		embedder: embedder,
	}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, dbFileName)
}

// open lazily opens the database and creates the schema. Callers must
// not hold the mutex; open takes it itself.
func (s *Store) open() (*sql.DB, error) {
	s.mu.RLock()
	db := s.db
	s.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	if err := os.MkdirAll(s.dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := s.Path()
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Debug("vectorstore: opened %s", dbPath)
	s.db = db
	return db, nil
}

// Upsert embeds each chunk and writes it to the index. Chunks that
// already carry an embedding are stored as-is.
func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if s.embedder == nil {
		return fmt.Errorf("%w: no embedding service configured", domain.ErrEmbeddingUnavailable)
	}

	if err := s.embedMissing(ctx, chunks); err != nil {
		return err
	}

	db, err := s.open()
	if err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, content, position, metadata, embedding)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			position = excluded.position,
			metadata = excluded.metadata,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.Content,
			chunk.Position, string(metadataJSON), embeddingBlob); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	logger.Debug("vectorstore: upserted %d chunks", len(chunks))
	return nil
}

// embedMissing fills in embeddings for chunks that lack one.
func (s *Store) embedMissing(ctx context.Context, chunks []domain.Chunk) error {
	var texts []string
	var indices []int
	for i, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			texts = append(texts, chunk.Content)
			indices = append(indices, i)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(embeddings) != len(texts) {
		return fmt.Errorf("%w: got %d embeddings for %d texts",
			domain.ErrEmbeddingUnavailable, len(embeddings), len(texts))
	}

	for j, i := range indices {
		chunks[i].Embedding = embeddings[j]
	}
	return nil
}

// Search embeds the query and returns the k most similar chunks,
// nearest-first. An uninitialised or empty store yields an empty result.
func (s *Store) Search(ctx context.Context, query string, k int) ([]domain.Chunk, error) {
	if s.embedder == nil {
		return nil, nil
	}
	if k < 1 {
		k = 1
	}

	// Nothing has ever been learned.
	if !s.exists() {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := db.QueryContext(ctx,
		"SELECT id, content, position, metadata, embedding FROM chunks")
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	type scored struct {
		chunk      domain.Chunk
		similarity float64
	}

	var candidates []scored
	for rows.Next() {
		var chunk domain.Chunk
		var metadataJSON string
		var embeddingBlob []byte

		if err := rows.Scan(&chunk.ID, &chunk.Content, &chunk.Position,
			&metadataJSON, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		if metadataJSON != "" {
			if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshalling chunk metadata: %w", err)
			}
		}

		candidates = append(candidates, scored{
			chunk:      chunk,
			similarity: cosineSimilarity(queryVec, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	results := make([]domain.Chunk, 0, k)
	for _, c := range candidates[:k] {
		results = append(results, c.chunk)
	}

	logger.Debug("vectorstore: search returned %d of %d chunks", len(results), len(candidates))
	return results, nil
}

// Count reports the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	if !s.exists() {
		return 0, nil
	}

	db, err := s.open()
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// Clear deletes the database files and resets the store to uninitialised.
// It takes the write lock so no read or write is in flight during the wipe.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		s.db = nil
	}

	dbPath := s.Path()
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}

	logger.Debug("vectorstore: cleared %s", dbPath)
	return nil
}

// Close closes the database connection if one is open.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// exists reports whether the database file has been created.
func (s *Store) exists() bool {
	s.mu.RLock()
	db := s.db
	s.mu.RUnlock()
	if db != nil {
		return true
	}

	_, err := os.Stat(s.Path())
	return err == nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched or empty vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
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

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
