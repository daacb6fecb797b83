package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors; adapters translate raw
// transport failures into one of these before returning across a port.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated indicates no valid credential is available and
	// refresh is not possible. Callers should start the login flow.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUnsupportedFormat indicates an unknown file type during ingestion.
	// There is no fallback; the caller is told immediately.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrDocumentProcessing indicates text extraction or chunking failed.
	// The wrapped cause carries the extraction strategy's error.
	ErrDocumentProcessing = errors.New("document processing failed")

	// ErrGenerationFailure indicates a language-model call or its JSON
	// response parsing failed. This error never crosses the service
	// boundary; services recover by returning an empty mapping.
	ErrGenerationFailure = errors.New("template generation failed")

	// ErrPublishFailure indicates the remote document API rejected a
	// create or batch-update call. No retry is attempted and a partially
	// created remote document may remain.
	ErrPublishFailure = errors.New("document publish failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// AI-assisted parsing and generation fall back to rule-based parsing.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Learning and semantic search are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrTokenRefreshFailed indicates a token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")
)
