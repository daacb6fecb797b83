package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driving"
)

func TestCreate_EmptyContent(t *testing.T) {
	creator := NewCreatorService(NewParserService(nil, nil), nil, nil, &fakePublisher{})

	_, err := creator.Create(context.Background(), driving.CreateRequest{Title: "T", Content: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ParserPath(t *testing.T) {
	publisher := &fakePublisher{}
	creator := NewCreatorService(NewParserService(nil, nil), nil, nil, publisher)

	result, err := creator.Create(context.Background(), driving.CreateRequest{
		Title:   "My App",
		Content: "Summary: a todo list app",
	})
	require.NoError(t, err)

	assert.Equal(t, "My App", publisher.lastTitle)
	assert.Equal(t, "a todo list app", publisher.lastSections["summary"])
	assert.Contains(t, result.Handle.URL, result.Handle.ID)
	assert.Zero(t, result.ReferenceCount)
}

func TestCreate_TitleFromContent(t *testing.T) {
	publisher := &fakePublisher{}
	creator := NewCreatorService(NewParserService(nil, nil), nil, nil, publisher)

	_, err := creator.Create(context.Background(), driving.CreateRequest{
		Content: "Title: Derived Title\nSummary: something",
	})
	require.NoError(t, err)
	assert.Equal(t, "Derived Title", publisher.lastTitle)
}

func TestCreate_GeneratorPath(t *testing.T) {
	store := &fakeVectorStore{chunks: learnedChunks()}
	llm := &fakeLLM{response: `{"summary": "Generated from learned material."}`}
	generator := NewGeneratorService(llm, store, nil)
	learner := newTestLearner(store)
	publisher := &fakePublisher{}

	creator := NewCreatorService(NewParserService(nil, nil), generator, learner, publisher)

	result, err := creator.Create(context.Background(), driving.CreateRequest{
		Title:      "RAG Doc",
		Content:    "describe the backend",
		UseLearned: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Generated from learned material.", publisher.lastSections["summary"])
	assert.Equal(t, 2, result.ReferenceCount)

	// The mapping handed to the publisher is fully resolved.
	for _, key := range domain.SectionKeys() {
		assert.NotEmpty(t, publisher.lastSections[key])
	}
}

func TestCreate_GeneratorEmptyFallsBackToParser(t *testing.T) {
	// Empty store means generation produces nothing.
	generator := NewGeneratorService(&fakeLLM{response: "{}"}, &fakeVectorStore{}, nil)
	publisher := &fakePublisher{}

	creator := NewCreatorService(NewParserService(nil, nil), generator, nil, publisher)

	result, err := creator.Create(context.Background(), driving.CreateRequest{
		Title:      "Fallback",
		Content:    "Summary: parsed instead",
		UseLearned: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "parsed instead", publisher.lastSections["summary"])
	assert.Zero(t, result.ReferenceCount)
}

func TestCreate_PublishFailure(t *testing.T) {
	publisher := &fakePublisher{err: domain.ErrUnauthenticated}
	creator := NewCreatorService(NewParserService(nil, nil), nil, nil, publisher)

	_, err := creator.Create(context.Background(), driving.CreateRequest{Title: "T", Content: "c"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
