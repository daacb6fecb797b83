package driving

import (
	"context"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

// ParserService turns free-text user input into a resolved section mapping.
type ParserService interface {
	// Parse extracts section content from the input. The result always
	// contains every canonical key: sections the input does not cover keep
	// their registry defaults. Parse never fails; an unreachable language
	// model degrades to rule-based extraction.
	Parse(ctx context.Context, input string) domain.SectionMapping
}

// GeneratorService produces a section mapping from previously learned
// reference material.
type GeneratorService interface {
	// Generate retrieves chunks similar to query and asks the language
	// model for the section JSON. It returns an empty mapping - never a
	// partial one - when the model is unavailable, retrieval finds
	// nothing, or the response is structurally invalid.
	Generate(ctx context.Context, query string) domain.SectionMapping
}
