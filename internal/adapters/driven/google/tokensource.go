// Package google publishes generated documents through the Google Docs API.
package google

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// tokenSourceAdapter adapts a CredentialSource to oauth2.TokenSource so
// Google API clients pick up refreshed tokens transparently.
type tokenSourceAdapter struct {
	source driven.CredentialSource
	ctx    context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a CredentialSource.
// The returned TokenSource can be used with option.WithTokenSource() when
// creating Google API services.
func NewTokenSource(ctx context.Context, source driven.CredentialSource) oauth2.TokenSource {
	return &tokenSourceAdapter{
		source: source,
		ctx:    ctx,
	}
}

// Token implements oauth2.TokenSource. Called by Google API clients when
// they need an access token.
func (t *tokenSourceAdapter) Token() (*oauth2.Token, error) {
	cred, err := t.source.Credentials(t.ctx)
	if err != nil {
		return nil, err
	}

	tokenType := cred.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &oauth2.Token{
		AccessToken: cred.AccessToken,
		TokenType:   tokenType,
		Expiry:      cred.Expiry,
	}, nil
}
