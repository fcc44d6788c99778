// Package mcp provides the MCP (Model Context Protocol) tool server.
// It exposes web search, knowledge base search and helpdesk request creation
// to AI assistants.
package mcp

import (
	"errors"
	"slices"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// ErrNilPorts is returned when the server is created without ports.
var ErrNilPorts = errors.New("mcp: ports are required")

// Messages returned by tools whose backing service is not configured.
const (
	msgWebSearchUnavailable = "Tavily client not initialized. Please set TAVILY_API_KEY environment variable."
	msgPineconeUnavailable  = "Pinecone index not initialized. " +
		"Please check PINECONE_API_KEY and PINECONE_INDEX_NAME environment variables."
	msgOpenAIUnavailable  = "OpenAI client not initialized. Please set OPENAI_API_KEY environment variable."
	msgRequestUnavailable = "Request API not configured. " +
		"Please set REQUEST_SERVER_URL and REQUEST_ACCESS_TOKEN environment variables."
)

// knowledgeBaseUnavailable names the missing half of the knowledge base:
// the index is checked before the embedder.
func knowledgeBaseUnavailable(cfg *domain.AppConfig) string {
	if cfg == nil {
		return msgPineconeUnavailable
	}
	status := cfg.KnowledgeBase()
	if slices.Contains(status.Missing, domain.EnvPineconeAPIKey) ||
		slices.Contains(status.Missing, domain.EnvPineconeIndexName) {
		return msgPineconeUnavailable
	}
	if slices.Contains(status.Missing, domain.EnvOpenAIAPIKey) {
		return msgOpenAIUnavailable
	}
	return msgPineconeUnavailable
}
