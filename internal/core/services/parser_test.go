package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

func assertComplete(t *testing.T, sections domain.SectionMapping) {
	t.Helper()
	for _, key := range domain.SectionKeys() {
		assert.NotEmpty(t, sections[key], "key %s missing or blank", key)
	}
}

func TestParse_RuleBased_Labelled(t *testing.T) {
	parser := NewParserService(nil, nil)

	input := "Title: Expense Tracker\n" +
		"Summary: Tracks shared household expenses.\n" +
		"Key features:\n- split bills\n- monthly reports\n"

	sections := parser.Parse(context.Background(), input)

	assert.Equal(t, "Expense Tracker", sections[domain.KeyTitle])
	assert.Equal(t, "Tracks shared household expenses.", sections["summary"])
	assert.Contains(t, sections["functional_requirements"], "split bills")
	assertComplete(t, sections)
}

func TestParse_RuleBased_Unlabelled(t *testing.T) {
	parser := NewParserService(nil, nil)

	input := "A mobile app for tracking running sessions.\nIt records GPS traces."
	sections := parser.Parse(context.Background(), input)

	assert.Equal(t, "A mobile app for tracking running sessions.", sections[domain.KeyTitle])
	assert.Contains(t, sections["summary"], "GPS traces")
	assertComplete(t, sections)
}

func TestParse_RuleBased_Empty(t *testing.T) {
	parser := NewParserService(nil, nil)

	sections := parser.Parse(context.Background(), "")
	assert.Equal(t, domain.Defaults(), sections)
}

func TestParse_LLM_Success(t *testing.T) {
	llm := &fakeLLM{response: `{"title": "Chat App", "summary": "A realtime chat application."}`}
	parser := NewParserService(llm, nil)

	sections := parser.Parse(context.Background(), "I want a chat app")

	assert.Equal(t, "Chat App", sections[domain.KeyTitle])
	assert.Equal(t, "A realtime chat application.", sections["summary"])
	assertComplete(t, sections)

	assert.True(t, llm.lastOpts.JSONObject)
	assert.Equal(t, "I want a chat app", llm.lastUser)
}

func TestParse_LLM_FailureFallsBack(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection refused")}
	parser := NewParserService(llm, nil)

	sections := parser.Parse(context.Background(), "Title: Fallback App\nSummary: still works")

	assert.Equal(t, "Fallback App", sections[domain.KeyTitle])
	assert.Equal(t, "still works", sections["summary"])
	assertComplete(t, sections)
}

func TestParse_LLM_InvalidJSONFallsBack(t *testing.T) {
	llm := &fakeLLM{response: "Sure! Here is your specification in prose form."}
	parser := NewParserService(llm, nil)

	sections := parser.Parse(context.Background(), "Title: Robust App")

	assert.Equal(t, "Robust App", sections[domain.KeyTitle])
	assertComplete(t, sections)
}

func TestParse_LLM_CodeFencedJSON(t *testing.T) {
	llm := &fakeLLM{response: "```json\n{\"summary\": \"Fenced but valid.\"}\n```"}
	parser := NewParserService(llm, nil)

	sections := parser.Parse(context.Background(), "anything")
	assert.Equal(t, "Fenced but valid.", sections["summary"])
}

func TestExtractLabelled_TitleSynonyms(t *testing.T) {
	for _, input := range []string{
		"Name: Synonym App",
		"Project: Synonym App",
		"project name: Synonym App",
	} {
		sections := extractLabelled(input)
		require.Equal(t, "Synonym App", sections[domain.KeyTitle], "input %q", input)
	}
}

func TestExtractLabelled_LabelWordsWithoutSeparator(t *testing.T) {
	// Prose that merely starts with a label word is not a label line.
	input := "Overview of the system is out of scope for now.\nFeatures like search come later."
	sections := extractLabelled(input)

	assert.Equal(t, strings.TrimSpace(input), sections["summary"])
	assert.Empty(t, sections["functional_requirements"])
}

func TestExtractLabelled_LongFirstLineTruncated(t *testing.T) {
	long := "This opening sentence keeps going well past the point where any reasonable document title would stop being useful"
	sections := extractLabelled(long)
	assert.LessOrEqual(t, len(sections[domain.KeyTitle]), maxDerivedTitleLen)
}
