// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Normaliser: Extracts text from an uploaded document format
//   - VectorStore: Persists embedded chunks and serves similarity search
//   - DocumentPublisher: Materialises a specification as a remote document
//   - CredentialStore: OAuth token persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, learning
//     and retrieval are disabled.
//   - LLMService: Language model completions. Without it, parsing falls
//     back to rule-based extraction and retrieval-augmented generation is
//     disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
