package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Word documents.
type Normaliser struct{}

// New creates a new Word normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
// Legacy .doc files are routed here as well; only the OOXML container is
// actually parsed, so a genuine binary .doc fails with a clear error.
func (n *Normaliser) Extensions() []string {
	return []string{".docx", ".doc"}
}

// Extract returns one text segment per paragraph, in document order.
func (n *Normaliser) Extract(_ context.Context, name string, content []byte) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open %s: not a Word (OOXML) document: %w", name, err)
	}

	data, err := readDocumentXML(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if data == nil {
		return nil, nil
	}

	return parseParagraphs(data), nil
}

// readDocumentXML returns the bytes of word/document.xml, or nil when the
// archive carries no document part.
func readDocumentXML(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		return io.ReadAll(rc)
	}
	return nil, nil
}

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseParagraphs extracts the text of each non-empty paragraph.
func parseParagraphs(content []byte) []string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil
	}

	segments := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range para.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			segments = append(segments, text)
		}
	}

	return segments
}
