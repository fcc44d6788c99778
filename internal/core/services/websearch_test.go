package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

func TestWebSearchService_Search(t *testing.T) {
	ctx := context.Background()
	raw := "page body"

	newProvider := func() *mockWebSearch {
		return &mockWebSearch{resp: &domain.WebSearchResponse{
			Answer:  "42",
			Results: []domain.WebResult{{Title: "t", URL: "https://example.com", RawContent: &raw}},
			Images:  []any{"https://example.com/a.png"},
		}}
	}

	t.Run("applies defaults", func(t *testing.T) {
		provider := newProvider()
		svc := NewWebSearchService(provider)

		resp, err := svc.Search(ctx, domain.WebSearchQuery{Query: "golang"})

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultWebMaxResults, provider.query.MaxResults)
		assert.Equal(t, domain.SearchDepthBasic, provider.query.SearchDepth)
		assert.Equal(t, "42", resp.Answer)
		assert.Nil(t, resp.Results[0].RawContent)
		assert.Nil(t, resp.Images)
	})

	t.Run("keeps raw content and images when requested", func(t *testing.T) {
		svc := NewWebSearchService(newProvider())

		resp, err := svc.Search(ctx, domain.WebSearchQuery{
			Query: "golang", IncludeRawContent: true, IncludeImages: true, SearchDepth: "advanced",
		})

		require.NoError(t, err)
		require.NotNil(t, resp.Results[0].RawContent)
		assert.Equal(t, "page body", *resp.Results[0].RawContent)
		assert.Len(t, resp.Images, 1)
	})

	t.Run("invalid depth", func(t *testing.T) {
		svc := NewWebSearchService(newProvider())
		_, err := svc.Search(ctx, domain.WebSearchQuery{Query: "q", SearchDepth: "deep"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("blank query", func(t *testing.T) {
		svc := NewWebSearchService(newProvider())
		_, err := svc.Search(ctx, domain.WebSearchQuery{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unconfigured", func(t *testing.T) {
		svc := NewWebSearchService(nil)
		_, err := svc.Search(ctx, domain.WebSearchQuery{Query: "q"})
		assert.ErrorIs(t, err, domain.ErrWebSearchUnavailable)
	})

	t.Run("provider error", func(t *testing.T) {
		svc := NewWebSearchService(&mockWebSearch{err: errors.New("tavily down")})
		_, err := svc.Search(ctx, domain.WebSearchQuery{Query: "q"})
		assert.EqualError(t, err, "tavily down")
	})
}
