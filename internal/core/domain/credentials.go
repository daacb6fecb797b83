package domain

import "time"

// expirySkew is subtracted from the token expiry so credentials are
// refreshed slightly before they actually lapse.
const expirySkew = 30 * time.Second

// Credential is an externally issued OAuth2 token. It is owned by the
// auth gateway; other components borrow it per request and never mutate
// or persist it themselves.
type Credential struct {
	// AccessToken is the bearer token presented to remote APIs.
	AccessToken string `json:"access_token"`

	// RefreshToken allows obtaining a new access token after expiry.
	// Empty when the provider did not grant offline access.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is the token type, normally "Bearer".
	TokenType string `json:"token_type,omitempty"`

	// Expiry is when AccessToken stops being accepted.
	// Zero means the token does not expire.
	Expiry time.Time `json:"expiry,omitempty"`

	// Scopes are the OAuth scopes granted with this token.
	Scopes []string `json:"scopes,omitempty"`
}

// Expired reports whether the access token has lapsed (with a small skew
// so near-expiry tokens are treated as expired).
func (c *Credential) Expired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry.Add(-expirySkew))
}

// Valid reports whether the access token can be used as-is.
func (c *Credential) Valid() bool {
	return c != nil && c.AccessToken != "" && !c.Expired()
}

// Refreshable reports whether an expired credential can be renewed.
func (c *Credential) Refreshable() bool {
	return c != nil && c.RefreshToken != ""
}
