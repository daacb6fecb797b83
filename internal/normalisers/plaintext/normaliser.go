package plaintext

import (
	"context"
	"strings"

	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".md", ".markdown", ".text"}
}

// Extract returns the file content as a single segment.
// Invalid UTF-8 is passed through untouched; Windows line endings are
// normalised so chunk boundaries do not depend on the source platform.
func (n *Normaliser) Extract(_ context.Context, _ string, content []byte) ([]string, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []string{text}, nil
}
