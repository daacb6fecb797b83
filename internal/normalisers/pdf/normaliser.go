package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// MaxPages limits the number of pages processed from a single file.
const MaxPages = 500

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".pdf"}
}

// Extract returns one text segment per page, in page order.
// Pages whose text cannot be decoded are skipped rather than failing the
// whole file; a structurally invalid PDF fails outright.
func (n *Normaliser) Extract(_ context.Context, name string, content []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", name, err)
	}

	total := reader.NumPage()
	if total > MaxPages {
		return nil, fmt.Errorf("pdf %s: too many pages (%d, max %d)", name, total, MaxPages)
	}

	segments := make([]string, 0, total)
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		cleaned := cleanText(text)
		if cleaned != "" {
			segments = append(segments, cleaned)
		}
	}

	return segments, nil
}

// cleanText strips null bytes and collapses runs of horizontal whitespace
// while preserving line breaks.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")

	var b strings.Builder
	lastWasSpace := false
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteRune('\n')
			lastWasSpace = false
		case unicode.IsSpace(r):
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		default:
			b.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}
