package mcp

import (
	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
// Every service is optional: a nil service keeps its tool registered but
// makes it answer with a configuration error.
type Ports struct {
	// WebSearch backs the web_search tool.
	WebSearch driving.WebSearchService

	// KnowledgeBase backs the kb_search tool.
	KnowledgeBase driving.KnowledgeBaseService

	// Request backs the create_request tool.
	Request driving.RequestService

	// Ingestion backs the index stats and run history resources.
	Ingestion driving.IngestionService

	// Config is the resolved configuration, reported by the status resource.
	Config *domain.AppConfig
}

// Validate ensures the ports can build a server.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrNilPorts
	}
	return nil
}
