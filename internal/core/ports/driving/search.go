package driving

import (
	"context"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// KnowledgeBaseService performs semantic search over ingested tickets.
type KnowledgeBaseService interface {
	// Search embeds the query and returns the most similar records.
	Search(ctx context.Context, query string, opts domain.KBSearchOptions) (*domain.KBSearchResponse, error)
}

// WebSearchService searches the public web.
type WebSearchService interface {
	// Search validates the query and forwards it to the provider.
	Search(ctx context.Context, query domain.WebSearchQuery) (*domain.WebSearchResponse, error)
}
