package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
	"github.com/custodia-labs/specforge/internal/core/ports/driving"
	"github.com/custodia-labs/specforge/internal/logger"
)

// Ensure CreatorService implements the interface.
var _ driving.CreatorService = (*CreatorService)(nil)

// CreatorService orchestrates one document creation end to end: section
// content from the generator (when asked and available) or the parser,
// then publishing.
type CreatorService struct {
	parser    driving.ParserService
	generator driving.GeneratorService
	learner   driving.LearnerService
	publisher driven.DocumentPublisher
}

// NewCreatorService creates the orchestrator. generator and learner may
// be nil when retrieval-augmented generation is not configured.
func NewCreatorService(
	parser driving.ParserService,
	generator driving.GeneratorService,
	learner driving.LearnerService,
	publisher driven.DocumentPublisher,
) *CreatorService {
	return &CreatorService{
		parser:    parser,
		generator: generator,
		learner:   learner,
		publisher: publisher,
	}
}

// Create resolves the section content and publishes the document.
// When req.UseLearned is set and the generator produces content, that
// content wins; otherwise the parser path runs. The published title is
// req.Title when given, else the resolved title section.
func (s *CreatorService) Create(ctx context.Context, req driving.CreateRequest) (*driving.CreateResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: empty document content", domain.ErrInvalidInput)
	}

	var sections domain.SectionMapping
	referenceCount := 0

	if req.UseLearned && s.generator != nil {
		if generated := s.generator.Generate(ctx, req.Content); len(generated) > 0 {
			sections = domain.Merge(generated)
			referenceCount = s.countReferences(ctx, req.Content)
		}
	}

	if sections == nil {
		sections = s.parser.Parse(ctx, req.Content)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = sections[domain.KeyTitle]
	}

	handle, err := s.publisher.Publish(ctx, title, sections)
	if err != nil {
		return nil, err
	}

	logger.Info("created document %q (%d references)", title, referenceCount)

	return &driving.CreateResult{
		Handle:         *handle,
		ReferenceCount: referenceCount,
	}, nil
}

// countReferences reports how many learned chunks informed the
// generation. Best effort: a failed count is reported as zero.
func (s *CreatorService) countReferences(ctx context.Context, query string) int {
	if s.learner == nil {
		return 0
	}
	chunks, err := s.learner.Search(ctx, query, retrievalK)
	if err != nil {
		return 0
	}
	return len(chunks)
}
