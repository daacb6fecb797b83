package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

// stubNormaliser returns fixed segments or a fixed error.
type stubNormaliser struct {
	exts     []string
	segments []string
	err      error
	lastName string
}

func (s *stubNormaliser) Extensions() []string { return s.exts }

func (s *stubNormaliser) Extract(_ context.Context, name string, _ []byte) ([]string, error) {
	s.lastName = name
	if s.err != nil {
		return nil, s.err
	}
	return s.segments, nil
}

func TestNewPipeline_FirstComeExtensionClaim(t *testing.T) {
	first := &stubNormaliser{exts: []string{".txt"}, segments: []string{"first"}}
	second := &stubNormaliser{exts: []string{".txt", ".log"}, segments: []string{"second"}}

	p := NewPipeline(NewChunker(), first, second)

	chunks, err := p.IngestFile(context.Background(), "a.txt", nil, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "first", chunks[0].Content)

	chunks, err = p.IngestFile(context.Background(), "a.log", nil, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "second", chunks[0].Content)
}

func TestSupportedExtensions(t *testing.T) {
	p := NewPipeline(NewChunker(),
		&stubNormaliser{exts: []string{".txt", ".md"}},
		&stubNormaliser{exts: []string{".pdf"}},
	)

	exts := p.SupportedExtensions()
	assert.ElementsMatch(t, []string{".txt", ".md", ".pdf"}, exts)
}

func TestIngestFile_UnsupportedFormat(t *testing.T) {
	p := NewPipeline(NewChunker(), &stubNormaliser{exts: []string{".txt"}})

	chunks, err := p.IngestFile(context.Background(), "photo.png", nil, nil)
	assert.Nil(t, chunks)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIngestFile_CaseInsensitiveExtension(t *testing.T) {
	p := NewPipeline(NewChunker(), &stubNormaliser{exts: []string{".txt"}, segments: []string{"ok"}})

	chunks, err := p.IngestFile(context.Background(), "NOTES.TXT", nil, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
}

func TestIngestFile_ExtractionError(t *testing.T) {
	boom := errors.New("corrupt file")
	p := NewPipeline(NewChunker(), &stubNormaliser{exts: []string{".txt"}, err: boom})

	chunks, err := p.IngestFile(context.Background(), "a.txt", nil, nil)
	assert.Nil(t, chunks)
	assert.ErrorIs(t, err, domain.ErrDocumentProcessing)
	assert.ErrorIs(t, err, boom)
}

func TestIngestFile_NoText(t *testing.T) {
	p := NewPipeline(NewChunker(), &stubNormaliser{exts: []string{".txt"}})

	chunks, err := p.IngestFile(context.Background(), "empty.txt", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestIngestFile_MetadataAttached(t *testing.T) {
	p := NewPipeline(NewChunker(), &stubNormaliser{
		exts:     []string{".txt"},
		segments: []string{strings.Repeat("z", 1500)},
	})

	metadata := map[string]any{"category": "spec", "tags": "auth"}
	chunks, err := p.IngestFile(context.Background(), "a.txt", nil, metadata)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	for _, chunk := range chunks {
		assert.Equal(t, "spec", chunk.Metadata["category"])
		assert.Equal(t, "auth", chunk.Metadata["tags"])
	}
}

func TestIngestFile_SegmentsJoined(t *testing.T) {
	p := NewPipeline(NewChunker(), &stubNormaliser{
		exts:     []string{".txt"},
		segments: []string{"page one", "page two"},
	})

	chunks, err := p.IngestFile(context.Background(), "a.txt", nil, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "page one\npage two", chunks[0].Content)
}

func TestIngestText_UsesFallback(t *testing.T) {
	fallback := &stubNormaliser{exts: []string{".txt"}, segments: []string{"typed text"}}
	p := NewPipeline(NewChunker(), fallback, &stubNormaliser{exts: []string{".pdf"}})

	chunks, err := p.IngestText(context.Background(), "typed text", nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "typed text", chunks[0].Content)
	assert.Equal(t, "input.txt", fallback.lastName)
}
