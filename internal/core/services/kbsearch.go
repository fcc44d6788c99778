package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driving"
	"github.com/custodia-labs/sops-ai/internal/logger"
)

// Ensure KnowledgeBaseService implements the interface.
var _ driving.KnowledgeBaseService = (*KnowledgeBaseService)(nil)

// KnowledgeBaseService answers semantic queries against ingested tickets.
type KnowledgeBaseService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewKnowledgeBaseService creates a new knowledge base search service.
func NewKnowledgeBaseService(embedder driven.EmbeddingService, store driven.VectorStore) *KnowledgeBaseService {
	return &KnowledgeBaseService{embedder: embedder, store: store}
}

// Search embeds the query and returns the closest records.
func (s *KnowledgeBaseService) Search(
	ctx context.Context,
	query string,
	opts domain.KBSearchOptions,
) (*domain.KBSearchResponse, error) {
	if s.embedder == nil || s.store == nil {
		return nil, domain.ErrKnowledgeBaseUnavailable
	}
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("query", "Query is required and cannot be empty.")
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = domain.DefaultKBTopK
	}

	logger.Section("Knowledge Base Search")
	logger.Debug("Query: %q (top_k=%d)", query, topK)

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.store.Query(ctx, vector, topK, opts.IncludeMetadata)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	logger.Debug("Index returned %d matches", len(matches))

	resp := &domain.KBSearchResponse{
		Results:        make([]domain.KBResult, 0, len(matches)),
		EmbeddingModel: s.embedder.ModelName(),
		IndexName:      s.store.Name(),
	}

	for _, m := range matches {
		result := domain.KBResult{
			ID:     m.ID,
			Score:  m.Score,
			Text:   metadataString(m.Metadata, "text"),
			Source: metadataString(m.Metadata, "source"),
		}
		if opts.IncludeMetadata && len(m.Metadata) > 0 {
			result.Metadata = m.Metadata
		}
		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

func metadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	s, _ := metadata[key].(string)
	return s
}
