package driven

import (
	"context"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

// DocumentPublisher materialises a resolved section mapping as a remote
// document and returns its handle.
//
// Publish obtains a per-request credential from the auth gateway; with no
// usable credential it returns domain.ErrUnauthenticated. Remote failures
// surface as domain.ErrPublishFailure with no retry; a partially created
// remote document may remain but is never referenced by a returned handle.
type DocumentPublisher interface {
	Publish(ctx context.Context, title string, sections domain.SectionMapping) (*domain.DocumentHandle, error)
}

// CredentialSource supplies a valid credential for one outbound request.
// Implementations refresh expired-but-refreshable tokens transparently.
type CredentialSource interface {
	// Credentials returns a usable credential or domain.ErrUnauthenticated.
	Credentials(ctx context.Context) (*domain.Credential, error)
}
