// Package services contains the core business logic: building and
// loading the vector index, retrieving context chunks, and routing
// questions between the knowledge base and the web search fallback.
//
// Services depend only on ports; adapters are injected by the caller.
package services
