package driving

import (
	"context"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

// CreateRequest is one document-creation request from the web layer.
type CreateRequest struct {
	// Title is the remote document title.
	Title string

	// Content is the user's free-text project description.
	Content string

	// UseLearned asks for retrieval-augmented generation when learned
	// reference material is available.
	UseLearned bool
}

// CreateResult reports a successful document creation.
type CreateResult struct {
	// Handle identifies the published document.
	Handle domain.DocumentHandle

	// ReferenceCount is the number of learned chunks consulted.
	// Zero when the parser path was used.
	ReferenceCount int
}

// CreatorService orchestrates one document creation end to end:
// section content from parser or generator, then publishing.
type CreatorService interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
}
