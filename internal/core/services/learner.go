package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
	"github.com/custodia-labs/specforge/internal/core/ports/driving"
	"github.com/custodia-labs/specforge/internal/ingest"
	"github.com/custodia-labs/specforge/internal/logger"
)

// Ensure LearnerService implements the interface.
var _ driving.LearnerService = (*LearnerService)(nil)

// LearnerService feeds reference documents through the ingestion pipeline
// into the vector store and serves retrieval over them.
type LearnerService struct {
	pipeline *ingest.Pipeline
	store    driven.VectorStore
}

// NewLearnerService creates a learner.
func NewLearnerService(pipeline *ingest.Pipeline, store driven.VectorStore) *LearnerService {
	return &LearnerService{
		pipeline: pipeline,
		store:    store,
	}
}

// LearnFile extracts, chunks, and indexes an uploaded file.
// Returns the number of chunks stored.
func (s *LearnerService) LearnFile(ctx context.Context, filename string, content []byte, category, tags string) (int, error) {
	chunks, err := s.pipeline.IngestFile(ctx, filename, content, learnMetadata(filename, category, tags))
	if err != nil {
		return 0, err
	}
	return s.index(ctx, chunks)
}

// LearnText indexes raw text the same way as an uploaded plain-text file.
func (s *LearnerService) LearnText(ctx context.Context, text string, category, tags string) (int, error) {
	chunks, err := s.pipeline.IngestText(ctx, text, learnMetadata("", category, tags))
	if err != nil {
		return 0, err
	}
	return s.index(ctx, chunks)
}

// Search returns the k chunks most similar to query, nearest-first.
func (s *LearnerService) Search(ctx context.Context, query string, k int) ([]domain.Chunk, error) {
	return s.store.Search(ctx, query, k)
}

// Count reports how many chunks are currently indexed.
func (s *LearnerService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Clear wipes all learned data.
func (s *LearnerService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *LearnerService) index(ctx context.Context, chunks []domain.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}
	if err := s.store.Upsert(ctx, chunks); err != nil {
		return 0, err
	}
	logger.Info("learned %d chunks", len(chunks))
	return len(chunks), nil
}

// learnMetadata builds the chunk metadata from upload form fields.
// Empty fields are omitted so stored metadata stays sparse.
func learnMetadata(source, category, tags string) map[string]any {
	metadata := make(map[string]any)
	if source != "" {
		metadata["source"] = source
	}
	if category = strings.TrimSpace(category); category != "" {
		metadata["category"] = category
	}
	if tags = strings.TrimSpace(tags); tags != "" {
		metadata["tags"] = tags
	}
	return metadata
}
