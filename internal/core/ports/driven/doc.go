// Package driven defines the interfaces that core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentLoader: Extracts page text from a source file
//   - EmbeddingService: Generates vector embeddings
//   - IndexStore / VectorIndex: Persisted chunk+vector collection with
//     similarity search
//   - LLMService: Language model completions
//
// # Optional Interfaces
//
//   - WebSearcher: Web search fallback. When nil, unanswerable questions
//     get the fixed insufficient-information reply.
//   - JSONCompleter: Structured LLM output. When unsupported, answer
//     routing falls back to sentinel matching.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
