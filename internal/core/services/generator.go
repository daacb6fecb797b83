package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
	"github.com/custodia-labs/specforge/internal/core/ports/driving"
	"github.com/custodia-labs/specforge/internal/logger"
)

// Ensure GeneratorService implements the interface.
var _ driving.GeneratorService = (*GeneratorService)(nil)

// retrievalK is the number of learned chunks consulted per generation.
const retrievalK = 5

// GeneratorService produces section content from previously learned
// reference material: top-k retrieval over the vector store, then one
// JSON-constrained completion grounded in the retrieved text.
type GeneratorService struct {
	llm     driven.LLMService
	store   driven.VectorStore
	prompts driven.PromptStore
}

// NewGeneratorService creates a generator. Any nil dependency disables
// generation: Generate then returns an empty mapping.
func NewGeneratorService(llm driven.LLMService, store driven.VectorStore, prompts driven.PromptStore) *GeneratorService {
	return &GeneratorService{
		llm:     llm,
		store:   store,
		prompts: prompts,
	}
}

// fallbackContextPrompt is used when no prompt store is configured.
const fallbackContextPrompt = `You are a software specification writer. You are given reference material followed by the user's request. Respond with a single JSON object mapping specification section keys to plain-text section bodies grounded in the material. Omit keys you cannot fill.`

// Generate retrieves chunks similar to query and asks the model for the
// section JSON. The result is either complete enough to use or empty,
// never partial garbage: any failure along the way yields an empty
// mapping and the caller falls back to parsing.
func (s *GeneratorService) Generate(ctx context.Context, query string) domain.SectionMapping {
	if s.llm == nil || s.store == nil {
		return domain.SectionMapping{}
	}

	chunks, err := s.store.Search(ctx, query, retrievalK)
	if err != nil {
		logger.Warn("generator: retrieval failed: %v", err)
		return domain.SectionMapping{}
	}
	if len(chunks) == 0 {
		logger.Debug("generator: no learned material for query")
		return domain.SectionMapping{}
	}

	system := loadPrompt(s.prompts, driven.PromptSectionsFromContext, fallbackContextPrompt)
	user := buildContextPrompt(chunks, query)

	response, err := s.llm.Complete(ctx, system, user, driven.CompleteOptions{
		JSONObject:  true,
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("generator: completion failed: %v", err)
		return domain.SectionMapping{}
	}

	sections, err := domain.ParseSectionJSON([]byte(response))
	if err != nil {
		logger.Warn("generator: invalid section JSON: %v", err)
		return domain.SectionMapping{}
	}

	logger.Debug("generator: produced %d sections from %d references", len(sections), len(chunks))
	return sections
}

// buildContextPrompt lays out the retrieved chunks in similarity order
// followed by the user's request.
func buildContextPrompt(chunks []domain.Chunk, query string) string {
	var b strings.Builder
	b.WriteString("Reference material:\n\n")
	for i, chunk := range chunks {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		b.WriteString(chunk.Content)
	}
	b.WriteString("\n\nRequest:\n")
	b.WriteString(query)
	return b.String()
}
