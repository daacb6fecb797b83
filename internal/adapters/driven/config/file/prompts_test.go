package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

func TestPromptStore_LoadsDefaults(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{driven.PromptSectionsFromInput, driven.PromptSectionsFromContext} {
		prompt, err := store.Load(name)
		require.NoError(t, err)
		assert.Contains(t, prompt, "JSON object")
		assert.Contains(t, prompt, `"summary"`)
	}
}

func TestPromptStore_CreatesFilesOnFirstLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Constructor performs no I/O.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = store.Load(driven.PromptSectionsFromInput)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, driven.PromptSectionsFromInput+".txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "README.md"))
	assert.NoError(t, err)
}

func TestPromptStore_UserOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "Respond with a JSON object describing the project."
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, driven.PromptSectionsFromInput+".txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptSectionsFromInput)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_ReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	original, err := store.Load(driven.PromptSectionsFromInput)
	require.NoError(t, err)

	edited := original + "\nAlways answer in formal English."
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, driven.PromptSectionsFromInput+".txt"), []byte(edited), 0600))

	// Cached until reloaded.
	cached, err := store.Load(driven.PromptSectionsFromInput)
	require.NoError(t, err)
	assert.Equal(t, original, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptSectionsFromInput)
	require.NoError(t, err)
	assert.Equal(t, edited, fresh)
}

func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}
