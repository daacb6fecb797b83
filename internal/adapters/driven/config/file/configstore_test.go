package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("llm.provider", "openai"))
	require.NoError(t, store.Set("server.port", 8000))

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, 8000, store.GetInt("server.port"))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store := newTestConfigStore(t)

	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.Nil(t, store.GetStringSlice("nope"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("server.port", "not-a-number"))

	assert.Zero(t, store.GetInt("server.port"))
	assert.Nil(t, store.GetStringSlice("server.port"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("google.client_id", "abc123"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "abc123", reopened.GetString("google.client_id"))
}

func TestConfigStore_FlattensNestedTOML(t *testing.T) {
	dir := t.TempDir()
	tomlFile := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(tomlFile, []byte("[llm]\nprovider = \"ollama\"\nmodel = \"llama3.2\"\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.Equal(t, "llama3.2", store.GetString("llm.model"))
}

func TestConfigStore_SavesNestedTables(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("server.port", 9090))

	// Dot-notation keys are written back as TOML tables, so the file
	// round-trips through a reopen.
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[server]")
	assert.NotContains(t, string(data), "\"server.port\"")

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 9090, reopened.GetInt("server.port"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("google.scopes", []string{"documents", "drive.file"}))

	// Both the in-memory form and the reloaded []any form convert.
	assert.Equal(t, []string{"documents", "drive.file"}, store.GetStringSlice("google.scopes"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"documents", "drive.file"}, reopened.GetStringSlice("google.scopes"))
}

func TestUnflattenMap(t *testing.T) {
	nested := unflattenMap(map[string]any{
		"data_dir":     "/tmp/specforge",
		"llm.provider": "ollama",
		"llm.model":    "llama3.2",
	})

	assert.Equal(t, "/tmp/specforge", nested["data_dir"])
	llm, ok := nested["llm"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ollama", llm["provider"])
	assert.Equal(t, "llama3.2", llm["model"])
}

func TestConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}
