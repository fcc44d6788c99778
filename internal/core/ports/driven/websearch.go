package driven

import (
	"context"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// WebSearchProvider searches the public web.
type WebSearchProvider interface {
	// Search runs a query and returns ranked pages.
	Search(ctx context.Context, query domain.WebSearchQuery) (*domain.WebSearchResponse, error)
}
