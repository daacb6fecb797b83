// Package domain defines the core business entities for Specforge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SectionMapping: The fixed-schema content of a generated specification
//   - Chunk: The unit of embedding and retrieval
//   - Credential: An externally issued OAuth2 token
//   - DocumentHandle: A published remote document's identity
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
