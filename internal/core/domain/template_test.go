package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionKeys(t *testing.T) {
	keys := SectionKeys()

	require.Len(t, keys, len(Sections)+1)
	assert.Equal(t, KeyTitle, keys[0])
	assert.Equal(t, "summary", keys[1])
	assert.Equal(t, "implementation_status_conclusion", keys[len(keys)-1])

	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}

func TestIsSectionKey(t *testing.T) {
	assert.True(t, IsSectionKey(KeyTitle))
	assert.True(t, IsSectionKey("summary"))
	assert.True(t, IsSectionKey("database_schema"))
	assert.False(t, IsSectionKey("unknown"))
	assert.False(t, IsSectionKey(""))
	assert.False(t, IsSectionKey("Summary"))
}

func TestDefaults_CoversEveryKey(t *testing.T) {
	defaults := Defaults()

	for _, key := range SectionKeys() {
		assert.NotEmpty(t, strings.TrimSpace(defaults[key]), "default for %q", key)
	}
	assert.Len(t, defaults, len(SectionKeys()))
}

func TestDefaults_ReturnsCopy(t *testing.T) {
	first := Defaults()
	first["summary"] = "mutated"

	assert.NotEqual(t, "mutated", Defaults()["summary"])
}

func TestMerge(t *testing.T) {
	merged := Merge(SectionMapping{
		"summary":  "A todo list app.",
		KeyTitle:   "Todo",
		"glossary": "",
	})

	assert.Equal(t, "A todo list app.", merged["summary"])
	assert.Equal(t, "Todo", merged[KeyTitle])

	// Blank values keep the default.
	assert.Equal(t, Defaults()["glossary"], merged["glossary"])

	// Untouched sections keep the default, the result is fully resolved.
	for _, key := range SectionKeys() {
		assert.NotEmpty(t, merged[key], "merged value for %q", key)
	}
}

func TestMerge_IgnoresUnknownKeys(t *testing.T) {
	merged := Merge(SectionMapping{"unknown": "value"})

	_, ok := merged["unknown"]
	assert.False(t, ok)
}

func TestMerge_BlankIsWhitespace(t *testing.T) {
	merged := Merge(SectionMapping{"summary": "  \n\t "})
	assert.Equal(t, Defaults()["summary"], merged["summary"])
}

func TestMerge_DoesNotModifyInput(t *testing.T) {
	partial := SectionMapping{"summary": "A todo list app."}
	Merge(partial)

	assert.Len(t, partial, 1)
}
