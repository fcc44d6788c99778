package mcp

import (
	"context"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// mockWebSearchService is a mock implementation of driving.WebSearchService.
type mockWebSearchService struct {
	response *domain.WebSearchResponse
	err      error
	got      domain.WebSearchQuery
}

func (m *mockWebSearchService) Search(_ context.Context, query domain.WebSearchQuery) (*domain.WebSearchResponse, error) {
	m.got = query
	return m.response, m.err
}

// mockKnowledgeBaseService is a mock implementation of driving.KnowledgeBaseService.
type mockKnowledgeBaseService struct {
	response *domain.KBSearchResponse
	err      error
	gotQuery string
	gotOpts  domain.KBSearchOptions
}

func (m *mockKnowledgeBaseService) Search(
	_ context.Context,
	query string,
	opts domain.KBSearchOptions,
) (*domain.KBSearchResponse, error) {
	m.gotQuery = query
	m.gotOpts = opts
	return m.response, m.err
}

// mockRequestService is a mock implementation of driving.RequestService.
type mockRequestService struct {
	result *domain.RequestResult
	err    error
	got    domain.ServiceRequest
}

func (m *mockRequestService) Create(_ context.Context, req domain.ServiceRequest) (*domain.RequestResult, error) {
	m.got = req
	return m.result, m.err
}

// mockIngestionService is a mock implementation of driving.IngestionService.
type mockIngestionService struct {
	stats *domain.IndexStats
	runs  []domain.IngestRun
	err   error
}

func (m *mockIngestionService) Ingest(
	_ context.Context,
	_ *domain.TicketExport,
	_ domain.IngestOptions,
) (*domain.IngestReport, error) {
	return nil, m.err
}

func (m *mockIngestionService) Stats(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockIngestionService) History(_ context.Context, _ int) ([]domain.IngestRun, error) {
	return m.runs, m.err
}
