// Package domain defines the core business entities for sops-ai.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Ticket: A helpdesk ticket exported from the service desk dashboard
//   - VectorRecord: The unit written to the vector index
//   - IngestReport: The outcome of one ingestion run
//   - ServiceRequest: A new helpdesk request submitted through the tool server
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
