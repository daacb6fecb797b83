// Package file provides file-backed persistence for the OAuth credential.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CredentialStore = (*Store)(nil)

// tokenFileName is the credential file inside the data directory.
const tokenFileName = "token.json"

// Store persists a single OAuth credential as JSON on disk.
// Saves write to a temporary file and rename into place so a crash mid-write
// never leaves a torn credential.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a credential store rooted at dataDir.
// If dataDir is empty, defaults to ~/.specforge/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".specforge", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{
		path: filepath.Join(dataDir, tokenFileName),
	}, nil
}

// Save persists the credential, replacing any existing one.
func (s *Store) Save(cred *domain.Credential) error {
	if cred == nil {
		return fmt.Errorf("%w: nil credential", domain.ErrInvalidInput)
	}

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling credential: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing credential: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing credential file: %w", err)
	}

	return nil
}

// Load returns the stored credential, or domain.ErrNotFound when no login
// has happened yet.
func (s *Store) Load() (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no stored credential", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading credential: %w", err)
	}

	var cred domain.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("decoding credential: %w", err)
	}

	return &cred, nil
}

// Delete removes the stored credential. Deleting a missing credential is
// not an error.
func (s *Store) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credential: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
