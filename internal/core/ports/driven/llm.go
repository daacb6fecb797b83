package driven

import "context"

// LLMService provides language model completions.
// This is an optional service - when nil, input parsing degrades to
// rule-based extraction and retrieval-augmented generation is disabled.
//
// Implementations may include:
//   - OpenAI (gpt-4o, gpt-4o-mini)
//   - Ollama (local models)
type LLMService interface {
	// Complete submits a system instruction plus user content and returns
	// the completion text.
	Complete(ctx context.Context, system, user string, opts CompleteOptions) (string, error)

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures completion behaviour.
type CompleteOptions struct {
	// JSONObject constrains the response to a single JSON object when the
	// provider supports it. The response is still validated by the caller.
	JSONObject bool

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
