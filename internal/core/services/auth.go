package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
	"github.com/custodia-labs/specforge/internal/core/ports/driving"
	"github.com/custodia-labs/specforge/internal/logger"
)

// Ensure AuthService implements both the driving port and the
// credential source consumed by the publisher.
var (
	_ driving.AuthService     = (*AuthService)(nil)
	_ driven.CredentialSource = (*AuthService)(nil)
)

// AuthService runs the Google OAuth2 authorization-code flow and owns the
// stored credential: created at login, refreshed transparently when
// expired-but-refreshable, deleted at logout.
type AuthService struct {
	config *oauth2.Config
	store  driven.CredentialStore
}

// NewAuthService creates the auth service from Google OAuth settings.
func NewAuthService(settings domain.GoogleSettings, store driven.CredentialStore) *AuthService {
	return &AuthService{
		config: &oauth2.Config{
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			RedirectURL:  settings.RedirectURL,
			Scopes:       settings.Scopes,
			Endpoint:     google.Endpoint,
		},
		store: store,
	}
}

// LoginURL returns the provider authorization URL for a new login.
// Offline access with a forced consent prompt so Google always issues a
// refresh token, not only on the first grant.
func (s *AuthService) LoginURL(state string) (string, error) {
	if s.config.ClientID == "" || s.config.ClientSecret == "" {
		return "", fmt.Errorf("%w: Google OAuth is not configured", domain.ErrUnauthenticated)
	}

	return s.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// HandleCallback exchanges the authorization code and persists the
// resulting credential.
func (s *AuthService) HandleCallback(ctx context.Context, code string) error {
	if code == "" {
		return fmt.Errorf("%w: missing authorization code", domain.ErrInvalidInput)
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: code exchange failed: %w", domain.ErrUnauthenticated, err)
	}

	cred := credentialFromToken(token, s.config.Scopes)
	if err := s.store.Save(cred); err != nil {
		return fmt.Errorf("persisting credential: %w", err)
	}

	logger.Info("login completed, credential stored at %s", s.store.Path())
	return nil
}

// Credentials returns a usable credential for one outbound request,
// refreshing and re-persisting it first when expired but refreshable.
func (s *AuthService) Credentials(ctx context.Context) (*domain.Credential, error) {
	cred, err := s.store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: not logged in", domain.ErrUnauthenticated)
		}
		return nil, err
	}

	if cred.Valid() {
		return cred, nil
	}

	if !cred.Refreshable() {
		return nil, fmt.Errorf("%w: credential expired and not refreshable", domain.ErrUnauthenticated)
	}

	refreshed, err := s.refresh(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, err)
	}

	return refreshed, nil
}

// refresh exchanges the refresh token for a new access token and persists
// the result. Google may rotate the refresh token; keep the old one when
// no replacement is issued.
func (s *AuthService) refresh(ctx context.Context, cred *domain.Credential) (*domain.Credential, error) {
	token, err := s.config.TokenSource(ctx, &oauth2.Token{
		RefreshToken: cred.RefreshToken,
	}).Token()
	if err != nil {
		return nil, err
	}

	refreshed := credentialFromToken(token, cred.Scopes)
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cred.RefreshToken
	}

	if err := s.store.Save(refreshed); err != nil {
		return nil, fmt.Errorf("persisting refreshed credential: %w", err)
	}

	logger.Debug("credential refreshed, expires %s", refreshed.Expiry)
	return refreshed, nil
}

// IsAuthenticated reports whether a usable credential exists, refreshing
// it first when possible.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	_, err := s.Credentials(ctx)
	return err == nil
}

// Logout deletes the stored credential.
func (s *AuthService) Logout() error {
	return s.store.Delete()
}

// credentialFromToken maps an oauth2 token onto the domain credential.
func credentialFromToken(token *oauth2.Token, scopes []string) *domain.Credential {
	return &domain.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		Scopes:       scopes,
	}
}
