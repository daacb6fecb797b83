package domain

// Chunking parameters. A document is split into fixed-size windows with a
// fixed overlap between neighbours; boundaries are character-based and
// deterministic for identical input.
const (
	// DefaultChunkSize is the number of characters per chunk.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the number of characters shared between
	// consecutive chunks.
	DefaultChunkOverlap = 200
)

// Chunk is the unit of embedding and retrieval: a bounded span of source
// text with attached metadata.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the source text.
	Position int

	// Embedding is the vector representation for similarity search.
	// Populated by the vector store on upsert; empty before that.
	Embedding []float32

	// Metadata contains chunk metadata. Sparse: "source", "category" and
	// "tags" are present only when known at ingestion time.
	Metadata map[string]any
}

// DocumentHandle identifies a published remote document.
// Immutable once created; published documents are never updated or
// deleted through this system.
type DocumentHandle struct {
	// ID is the remote document identifier.
	ID string `json:"id"`

	// URL is the shareable edit URL. It contains ID.
	URL string `json:"url"`
}
