// Package ingest turns uploaded documents into metadata-tagged chunks
// ready for embedding.
package ingest

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

// Chunker splits text into fixed-size overlapping chunks.
// Boundaries are character-based and deterministic for identical input.
type Chunker struct {
	chunkSize int
	overlap   int
}

// ChunkerOption configures the chunker.
type ChunkerOption func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) ChunkerOption {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) ChunkerOption {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// NewChunker creates a chunker with the given options.
func NewChunker(opts ...ChunkerOption) *Chunker {
	c := &Chunker{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split cuts text into chunks, attaching a copy of metadata to each.
// Empty text produces no chunks. Each chunk holds at most chunkSize
// characters; consecutive chunks share overlap characters; the last chunk
// may be shorter.
func (c *Chunker) Split(text string, metadata map[string]any) []domain.Chunk {
	if text == "" {
		return nil
	}

	textLen := len(text)
	step := c.chunkSize - c.overlap

	estimated := textLen/step + 1
	chunks := make([]domain.Chunk, 0, estimated)

	position := 0
	for start := 0; start < textLen; start += step {
		end := start + c.chunkSize
		if end > textLen {
			end = textLen
		}

		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Content:  text[start:end],
			Position: position,
			Metadata: copyMetadata(metadata),
		})
		position++
	}

	return chunks
}

// copyMetadata creates a shallow copy so chunks never share a map.
func copyMetadata(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
