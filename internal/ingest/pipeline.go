package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
	"github.com/custodia-labs/specforge/internal/logger"
)

// Pipeline selects an extraction strategy by file extension, applies
// caller metadata, and chunks the extracted text.
type Pipeline struct {
	strategies map[string]driven.Normaliser
	fallback   driven.Normaliser // used for raw text input
	chunker    *Chunker
}

// NewPipeline builds a pipeline from the given normalisers. The first
// normaliser also serves raw-text ingestion and should be the plain-text
// strategy. Extensions are claimed first-come: a later normaliser never
// displaces an earlier one.
func NewPipeline(chunker *Chunker, normalisers ...driven.Normaliser) *Pipeline {
	p := &Pipeline{
		strategies: make(map[string]driven.Normaliser),
		chunker:    chunker,
	}

	for _, n := range normalisers {
		if p.fallback == nil {
			p.fallback = n
		}
		for _, ext := range n.Extensions() {
			if _, taken := p.strategies[ext]; !taken {
				p.strategies[ext] = n
			}
		}
	}

	return p
}

// SupportedExtensions returns the extensions the pipeline accepts.
func (p *Pipeline) SupportedExtensions() []string {
	exts := make([]string, 0, len(p.strategies))
	for ext := range p.strategies {
		exts = append(exts, ext)
	}
	return exts
}

// IngestFile extracts text from an uploaded file and splits it into
// metadata-tagged chunks. Unknown extensions fail with
// domain.ErrUnsupportedFormat; extraction failures are wrapped in
// domain.ErrDocumentProcessing. A file that holds no text yields an
// empty slice and no error.
func (p *Pipeline) IngestFile(ctx context.Context, filename string, content []byte, metadata map[string]any) ([]domain.Chunk, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	strategy, ok := p.strategies[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}

	segments, err := strategy.Extract(ctx, filename, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDocumentProcessing, err)
	}

	return p.chunkSegments(filename, segments, metadata), nil
}

// IngestText splits raw text the same way as an uploaded plain-text file.
func (p *Pipeline) IngestText(ctx context.Context, text string, metadata map[string]any) ([]domain.Chunk, error) {
	segments, err := p.fallback.Extract(ctx, "input.txt", []byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDocumentProcessing, err)
	}

	return p.chunkSegments("input.txt", segments, metadata), nil
}

func (p *Pipeline) chunkSegments(name string, segments []string, metadata map[string]any) []domain.Chunk {
	text := strings.Join(segments, "\n")
	if strings.TrimSpace(text) == "" {
		logger.Debug("ingest: %s produced no text", name)
		return nil
	}

	chunks := p.chunker.Split(text, metadata)
	logger.Debug("ingest: %s -> %d segments, %d chunks", name, len(segments), len(chunks))
	return chunks
}
