package services

import (
	"context"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// fakeLLM returns a canned completion and records the last request.
type fakeLLM struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
	lastOpts   driven.CompleteOptions
	calls      int
}

func (f *fakeLLM) Complete(_ context.Context, system, user string, opts driven.CompleteOptions) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Ping(_ context.Context) error { return nil }
func (f *fakeLLM) Close() error                 { return nil }

// fakeVectorStore serves canned search results and records writes.
type fakeVectorStore struct {
	chunks    []domain.Chunk
	searchErr error
	upsertErr error
	cleared   bool
	upserted  []domain.Chunk
}

func (f *fakeVectorStore) Upsert(_ context.Context, chunks []domain.Chunk) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, chunks...)
	return nil
}

func (f *fakeVectorStore) Search(_ context.Context, _ string, k int) ([]domain.Chunk, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if k > len(f.chunks) {
		k = len(f.chunks)
	}
	return f.chunks[:k], nil
}

func (f *fakeVectorStore) Clear(_ context.Context) error {
	f.cleared = true
	f.chunks = nil
	f.upserted = nil
	return nil
}

func (f *fakeVectorStore) Count(_ context.Context) (int, error) {
	return len(f.chunks) + len(f.upserted), nil
}

func (f *fakeVectorStore) Close() error { return nil }

// fakePublisher records the last publish and returns a fixed handle.
type fakePublisher struct {
	err          error
	lastTitle    string
	lastSections domain.SectionMapping
}

func (f *fakePublisher) Publish(_ context.Context, title string, sections domain.SectionMapping) (*domain.DocumentHandle, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastTitle = title
	f.lastSections = sections
	return &domain.DocumentHandle{
		ID:  "doc-1",
		URL: "https://docs.google.com/document/d/doc-1/edit",
	}, nil
}
