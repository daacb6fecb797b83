package driven

import "context"

// Normaliser extracts plain text from one uploaded document format.
// Each normaliser handles a fixed set of file extensions; the ingestion
// pipeline selects the strategy from a static table, with no fallback
// chain between strategies.
type Normaliser interface {
	// Extensions returns the lower-case file extensions (including the
	// leading dot) this normaliser handles.
	Extensions() []string

	// Extract produces ordered raw text segments from the source bytes.
	// name is the original file name, used for diagnostics only.
	// An empty result with a nil error means the source held no text.
	Extract(ctx context.Context, name string, content []byte) ([]string, error)
}
