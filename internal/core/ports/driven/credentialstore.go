package driven

import "github.com/custodia-labs/specforge/internal/core/domain"

// CredentialStore persists the OAuth credential between requests.
// One credential per deployment: login overwrites, logout deletes.
// Writes must be atomic so a crash never leaves a torn token file.
type CredentialStore interface {
	// Save persists the credential, replacing any existing one.
	Save(cred *domain.Credential) error

	// Load returns the stored credential, or domain.ErrNotFound when no
	// login has happened yet.
	Load() (*domain.Credential, error)

	// Delete removes the stored credential. Deleting a missing credential
	// is not an error.
	Delete() error

	// Path returns the backing file path, for diagnostics.
	Path() string
}
