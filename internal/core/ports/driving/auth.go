package driving

import "context"

// AuthService runs the OAuth2 authorization-code flow and owns the
// credential lifecycle: created at login, refreshed transparently when
// expired-but-refreshable, deleted at logout.
type AuthService interface {
	// LoginURL returns the provider authorization URL for a new login.
	// state is echoed back on the callback for CSRF protection.
	LoginURL(state string) (string, error)

	// HandleCallback exchanges the authorization code and persists the
	// resulting credential.
	HandleCallback(ctx context.Context, code string) error

	// IsAuthenticated reports whether a usable credential exists,
	// refreshing it first when possible.
	IsAuthenticated(ctx context.Context) bool

	// Logout deletes the stored credential.
	Logout() error
}
