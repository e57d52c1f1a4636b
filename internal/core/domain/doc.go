// Package domain defines the core business entities for the Health
// Assistant retrieval pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: One loaded page of source text
//   - Chunk: An embeddable window cut from a page
//   - WebResult: A web search fallback hit
//   - Answer: A routed answer with its origin and sources
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
