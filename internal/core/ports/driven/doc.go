// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - EmbeddingService: Turns text into a vector (OpenAI)
//   - VectorStore: Writes, queries and inspects one vector index (Pinecone, memory)
//   - IndexProvisioner: Opens or creates a named vector index
//   - WebSearchProvider: Searches the public web (Tavily)
//   - HelpdeskClient: Submits new requests to the helpdesk API
//   - IngestRunStore: Persists ingestion run summaries (SQLite)
//   - ConfigStore: Application configuration file
//
// Every interface except ConfigStore is optional at runtime: when its
// settings are missing, the feature that needs it is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
