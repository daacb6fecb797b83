package google

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
	"github.com/custodia-labs/specforge/internal/logger"
)

// Ensure Publisher implements the interface.
var _ driven.DocumentPublisher = (*Publisher)(nil)

// docURLFormat is the canonical edit URL for a created document.
const docURLFormat = "https://docs.google.com/document/d/%s/edit"

// Publisher creates Google Docs from resolved section mappings.
// Each Publish call builds a fresh Docs client so refreshed credentials
// are always picked up.
type Publisher struct {
	source  driven.CredentialSource
	limiter *RateLimiter
	opts    []option.ClientOption
}

// NewPublisher creates a publisher backed by the given credential source.
// Extra client options are passed to the Docs service; tests use them to
// point the client at a fake endpoint.
func NewPublisher(source driven.CredentialSource, opts ...option.ClientOption) *Publisher {
	return &Publisher{
		source:  source,
		limiter: NewRateLimiter(),
		opts:    opts,
	}
}

// Publish creates a new document titled title, fills it with the section
// content and returns its handle. The remote document is created first
// and populated with a single batch update; if the batch update fails the
// empty remote document is left behind but never referenced.
func (p *Publisher) Publish(ctx context.Context, title string, sections domain.SectionMapping) (*domain.DocumentHandle, error) {
	// Fail fast before touching the API when nobody is logged in.
	if _, err := p.source.Credentials(ctx); err != nil {
		return nil, err
	}

	clientOpts := append([]option.ClientOption{
		option.WithTokenSource(NewTokenSource(ctx, p.source)),
	}, p.opts...)

	svc, err := docs.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: creating docs client: %w", domain.ErrPublishFailure, err)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	doc, err := svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: creating document: %w", domain.ErrPublishFailure, err)
	}

	requests := renderRequests(title, sections)

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if _, err := svc.Documents.BatchUpdate(doc.DocumentId, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("%w: writing document content: %w", domain.ErrPublishFailure, err)
	}

	logger.Info("published document %s", doc.DocumentId)

	return &domain.DocumentHandle{
		ID:  doc.DocumentId,
		URL: fmt.Sprintf(docURLFormat, doc.DocumentId),
	}, nil
}

// styleRange marks a paragraph range to receive a named style.
// Offsets are UTF-16 code units, the unit the Docs API indexes by.
type styleRange struct {
	start, end int64
	named      string
}

// renderRequests builds the batch update: one insert of the whole body
// followed by paragraph style updates for the title and section headings.
func renderRequests(title string, sections domain.SectionMapping) []*docs.Request {
	body, styles := renderBody(title, sections)

	requests := make([]*docs.Request, 0, len(styles)+1)
	requests = append(requests, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: 1},
			Text:     body,
		},
	})

	for _, s := range styles {
		requests = append(requests, &docs.Request{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range: &docs.Range{
					StartIndex: s.start,
					EndIndex:   s.end,
				},
				ParagraphStyle: &docs.ParagraphStyle{
					NamedStyleType: s.named,
				},
				Fields: "namedStyleType",
			},
		})
	}

	return requests
}

// renderBody lays out the document text in section order and records the
// styled ranges. Body content starts at index 1 in a fresh document.
// Blocks are separated by an empty paragraph: one after the title, one
// after each section body.
func renderBody(title string, sections domain.SectionMapping) (string, []styleRange) {
	var b strings.Builder
	var styles []styleRange
	cursor := int64(1)

	paragraph := func(text, named string) {
		b.WriteString(text)
		b.WriteString("\n")
		length := utf16Len(text) + 1
		if named != "" {
			styles = append(styles, styleRange{start: cursor, end: cursor + length, named: named})
		}
		cursor += length
	}
	blank := func() { paragraph("", "") }

	paragraph(title, "TITLE")
	blank()
	for _, section := range domain.Sections {
		paragraph(section.Heading, "HEADING_1")
		paragraph(sections[section.Key], "")
		blank()
	}

	return b.String(), styles
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int64 {
	return int64(len(utf16.Encode([]rune(s))))
}
