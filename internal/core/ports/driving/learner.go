package driving

import (
	"context"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

// LearnerService ingests reference documents into the vector store and
// serves retrieval over them.
type LearnerService interface {
	// LearnFile extracts, chunks, and indexes an uploaded file.
	// Returns the number of chunks stored. Unknown extensions yield
	// domain.ErrUnsupportedFormat; extraction failures yield
	// domain.ErrDocumentProcessing.
	LearnFile(ctx context.Context, filename string, content []byte, category, tags string) (int, error)

	// LearnText indexes raw text the same way as an uploaded plain-text file.
	LearnText(ctx context.Context, text string, category, tags string) (int, error)

	// Search returns the k chunks most similar to query, nearest-first.
	Search(ctx context.Context, query string, k int) ([]domain.Chunk, error)

	// Count reports how many chunks are currently indexed.
	Count(ctx context.Context) (int, error)

	// Clear wipes all learned data.
	Clear(ctx context.Context) error
}
