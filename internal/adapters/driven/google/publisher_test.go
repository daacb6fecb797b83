package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/custodia-labs/specforge/internal/core/domain"
)

// stubCredentialSource returns a fixed credential or error.
type stubCredentialSource struct {
	cred *domain.Credential
	err  error
}

func (s *stubCredentialSource) Credentials(_ context.Context) (*domain.Credential, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cred, nil
}

func validSource() *stubCredentialSource {
	return &stubCredentialSource{cred: &domain.Credential{
		AccessToken: "token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}}
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, int64(0), utf16Len(""))
	assert.Equal(t, int64(5), utf16Len("hello"))
	// Astral-plane characters take two UTF-16 code units.
	assert.Equal(t, int64(2), utf16Len("🚀"))
	assert.Equal(t, int64(6), utf16Len("🚀 App"))
}

func TestRenderBody_Offsets(t *testing.T) {
	sections := domain.Defaults()
	body, styles := renderBody("My Project", sections)

	// Title paragraph is styled TITLE starting at index 1.
	require.NotEmpty(t, styles)
	assert.Equal(t, "TITLE", styles[0].named)
	assert.Equal(t, int64(1), styles[0].start)
	assert.Equal(t, int64(1+len("My Project")+1), styles[0].end)

	// One heading style per section follows the title.
	assert.Len(t, styles, 1+len(domain.Sections))
	for _, s := range styles[1:] {
		assert.Equal(t, "HEADING_1", s.named)
	}

	// Ranges are contiguous with the rendered text.
	assert.True(t, strings.HasPrefix(body, "My Project\n"))
	for _, section := range domain.Sections {
		assert.Contains(t, body, section.Heading+"\n")
	}
}

func TestRenderBody_UTF16Offsets(t *testing.T) {
	sections := domain.Defaults()
	_, styles := renderBody("🚀 App", sections)

	// "🚀 App" is 6 UTF-16 units plus the trailing newline. The first
	// heading starts one unit later, after the empty separator paragraph.
	require.NotEmpty(t, styles)
	assert.Equal(t, int64(1), styles[0].start)
	assert.Equal(t, int64(8), styles[0].end)
	assert.Equal(t, int64(9), styles[1].start)
}

func TestRenderBody_BlankLinesBetweenBlocks(t *testing.T) {
	sections := domain.Defaults()
	body, _ := renderBody("My Project", sections)

	// An empty paragraph follows the title and each section body, so
	// every heading after the first is preceded by a blank line.
	assert.True(t, strings.HasPrefix(body, "My Project\n\n"))
	for _, section := range domain.Sections {
		assert.Contains(t, body, "\n\n"+section.Heading+"\n", "heading %q", section.Heading)
	}
	assert.True(t, strings.HasSuffix(body, "\n\n"))
}

func TestRenderRequests(t *testing.T) {
	requests := renderRequests("My Project", domain.Defaults())

	require.NotEmpty(t, requests)
	insert := requests[0].InsertText
	require.NotNil(t, insert)
	assert.Equal(t, int64(1), insert.Location.Index)
	assert.True(t, strings.HasPrefix(insert.Text, "My Project\n"))

	for _, req := range requests[1:] {
		require.NotNil(t, req.UpdateParagraphStyle)
		assert.Equal(t, "namedStyleType", req.UpdateParagraphStyle.Fields)
	}
}

func TestPublish_Unauthenticated(t *testing.T) {
	publisher := NewPublisher(&stubCredentialSource{err: domain.ErrUnauthenticated})

	_, err := publisher.Publish(context.Background(), "Title", domain.Defaults())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestPublish_CreatesAndPopulates(t *testing.T) {
	var batchUpdateDoc string
	var batchRequests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/documents":
			json.NewEncoder(w).Encode(map[string]string{"documentId": "doc-123", "title": "My Project"})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":batchUpdate"):
			batchUpdateDoc = strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/documents/"), ":batchUpdate")
			var body struct {
				Requests []json.RawMessage `json:"requests"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			batchRequests = len(body.Requests)
			w.Write([]byte("{}"))
		default:
			http.Error(w, "unexpected call: "+r.URL.Path, http.StatusNotFound)
		}
	}))
	defer server.Close()

	publisher := NewPublisher(validSource(), option.WithEndpoint(server.URL))

	handle, err := publisher.Publish(context.Background(), "My Project", domain.Defaults())
	require.NoError(t, err)
	require.NotNil(t, handle)

	assert.Equal(t, "doc-123", handle.ID)
	assert.Contains(t, handle.URL, "doc-123")
	assert.Equal(t, "doc-123", batchUpdateDoc)
	assert.Equal(t, 1+1+len(domain.Sections), batchRequests)
}

func TestPublish_RemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	publisher := NewPublisher(validSource(), option.WithEndpoint(server.URL))

	_, err := publisher.Publish(context.Background(), "My Project", domain.Defaults())
	assert.ErrorIs(t, err, domain.ErrPublishFailure)
}
