package driven

import (
	"context"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

// VectorStore persists embedded chunks and serves similarity search.
// The store owns the embedding lifecycle: callers hand it plain chunks and
// it computes and stores the vectors itself.
//
// Implementations must tolerate concurrent calls. Clear must be serialised
// against in-flight Upsert and Search so a wipe never races a write.
type VectorStore interface {
	// Upsert embeds each chunk and adds it to the persistent index,
	// durably persisting before returning. Without a configured embedding
	// service it returns domain.ErrEmbeddingUnavailable and has no side
	// effects.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// Search embeds the query and returns the k nearest chunks,
	// nearest-first. An uninitialised or empty store yields an empty
	// result, not an error. k below 1 is clamped to 1.
	Search(ctx context.Context, query string, k int) ([]domain.Chunk, error)

	// Clear irreversibly deletes the persisted index and resets the store
	// to uninitialised. This is the only deletion primitive.
	Clear(ctx context.Context) error

	// Count reports the number of stored chunks. An uninitialised store
	// counts zero.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
