package file

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

func newTestCred() *domain.Credential {
	return &domain.Credential{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC(),
		Scopes:       []string{"documents"},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	cred := newTestCred()
	require.NoError(t, store.Save(cred))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cred.AccessToken, loaded.AccessToken)
	assert.Equal(t, cred.RefreshToken, loaded.RefreshToken)
	assert.Equal(t, cred.Scopes, loaded.Scopes)
	assert.WithinDuration(t, cred.Expiry, loaded.Expiry, time.Second)
}

func TestLoad_NotFound(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSave_Overwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first := newTestCred()
	require.NoError(t, store.Save(first))

	second := newTestCred()
	second.AccessToken = "newer-token"
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "newer-token", loaded.AccessToken)
}

func TestSave_NilCredential(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, store.Save(nil), domain.ErrInvalidInput)
}

func TestSave_RestrictedPermissions(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(newTestCred()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestDelete(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(newTestCred()))
	require.NoError(t, store.Delete())

	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete())
}
