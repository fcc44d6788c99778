package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driving"
)

// Ensure WebSearchService implements the interface.
var _ driving.WebSearchService = (*WebSearchService)(nil)

// WebSearchService validates web queries and forwards them to the provider.
type WebSearchService struct {
	provider driven.WebSearchProvider
}

// NewWebSearchService creates a new web search service.
func NewWebSearchService(provider driven.WebSearchProvider) *WebSearchService {
	return &WebSearchService{provider: provider}
}

// Search applies defaults, validates and runs the query.
func (s *WebSearchService) Search(
	ctx context.Context,
	query domain.WebSearchQuery,
) (*domain.WebSearchResponse, error) {
	if s.provider == nil {
		return nil, domain.ErrWebSearchUnavailable
	}
	if strings.TrimSpace(query.Query) == "" {
		return nil, domain.NewValidationError("query", "Query is required and cannot be empty.")
	}

	if query.MaxResults <= 0 {
		query.MaxResults = domain.DefaultWebMaxResults
	}
	if query.SearchDepth == "" {
		query.SearchDepth = domain.SearchDepthBasic
	}
	if query.SearchDepth != domain.SearchDepthBasic && query.SearchDepth != domain.SearchDepthAdvanced {
		return nil, domain.NewValidationError("search_depth",
			"Invalid search_depth. Must be one of: basic, advanced")
	}

	resp, err := s.provider.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if !query.IncludeRawContent {
		for i := range resp.Results {
			resp.Results[i].RawContent = nil
		}
	}
	if !query.IncludeImages {
		resp.Images = nil
	}
	return resp, nil
}
