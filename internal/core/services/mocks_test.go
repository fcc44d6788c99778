package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
)

// mockEmbedder implements driven.EmbeddingService for testing.
// Texts containing any of failOn return an error.
type mockEmbedder struct {
	dimensions int
	failOn     []string
	vector     []float32
	calls      []string
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func newMockEmbedder(dimensions int) *mockEmbedder {
	return &mockEmbedder{dimensions: dimensions}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls = append(m.calls, text)
	for _, f := range m.failOn {
		if strings.Contains(text, f) {
			return nil, errors.New("simulated embedding outage")
		}
	}
	if m.vector != nil {
		return m.vector, nil
	}
	return make([]float32, m.dimensions), nil
}

func (m *mockEmbedder) Dimensions() int   { return m.dimensions }
func (m *mockEmbedder) ModelName() string { return "mock-embed" }
func (m *mockEmbedder) Close() error      { return nil }

// mockVectorStore implements driven.VectorStore for testing.
// Batches whose 1-based call number is in failBatches are rejected.
type mockVectorStore struct {
	mu          sync.Mutex
	name        string
	failBatches map[int]bool
	batchSizes  []int
	ids         []string
	matches     []domain.VectorMatch
	queryErr    error
	statsErr    error
	listErr     error
	deleted     []string
	lastTopK    int
}

var _ driven.VectorStore = (*mockVectorStore)(nil)

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{name: "tickets", failBatches: map[int]bool{}}
}

func (m *mockVectorStore) Name() string { return m.name }

func (m *mockVectorStore) Upsert(_ context.Context, records []domain.VectorRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchSizes = append(m.batchSizes, len(records))
	if m.failBatches[len(m.batchSizes)] {
		return 0, errors.New("simulated upsert failure")
	}
	for _, r := range records {
		m.ids = append(m.ids, r.ID)
	}
	return len(records), nil
}

func (m *mockVectorStore) Query(_ context.Context, _ []float32, topK int, _ bool) ([]domain.VectorMatch, error) {
	m.lastTopK = topK
	return m.matches, m.queryErr
}

func (m *mockVectorStore) DescribeStats(_ context.Context) (*domain.IndexStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return &domain.IndexStats{Dimension: domain.EmbeddingDimension, TotalVectorCount: len(m.ids)}, nil
}

func (m *mockVectorStore) ListIDs(_ context.Context, prefix string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []string
	for _, id := range m.ids {
		if strings.HasPrefix(id, prefix) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *mockVectorStore) Delete(_ context.Context, ids []string) error {
	m.deleted = append(m.deleted, ids...)
	return nil
}

func (m *mockVectorStore) Close() error { return nil }

// mockProvisioner implements driven.IndexProvisioner for testing.
type mockProvisioner struct {
	exists    bool
	openErr   error
	createErr error
	created   []domain.IndexSpec
	opens     int
}

var _ driven.IndexProvisioner = (*mockProvisioner)(nil)

func (m *mockProvisioner) OpenIndex(_ context.Context, name string) (driven.VectorStore, error) {
	m.opens++
	if m.openErr != nil {
		return nil, m.openErr
	}
	if !m.exists {
		return nil, domain.ErrNotFound
	}
	store := newMockVectorStore()
	store.name = name
	return store, nil
}

func (m *mockProvisioner) CreateIndex(_ context.Context, spec domain.IndexSpec) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, spec)
	m.exists = true
	return nil
}

// mockRunStore implements driven.IngestRunStore for testing.
type mockRunStore struct {
	runs    []domain.IngestRun
	saveErr error
}

var _ driven.IngestRunStore = (*mockRunStore)(nil)

func (m *mockRunStore) Save(_ context.Context, run domain.IngestRun) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockRunStore) List(_ context.Context, _ int) ([]domain.IngestRun, error) {
	return m.runs, nil
}

func (m *mockRunStore) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockWebSearch implements driven.WebSearchProvider for testing.
type mockWebSearch struct {
	resp  *domain.WebSearchResponse
	err   error
	query domain.WebSearchQuery
}

func (m *mockWebSearch) Search(_ context.Context, q domain.WebSearchQuery) (*domain.WebSearchResponse, error) {
	m.query = q
	return m.resp, m.err
}

// mockHelpdesk implements driven.HelpdeskClient for testing.
type mockHelpdesk struct {
	result  *domain.RequestResult
	err     error
	payload *domain.RequestPayload
}

func (m *mockHelpdesk) CreateRequest(_ context.Context, p domain.RequestPayload) (*domain.RequestResult, error) {
	m.payload = &p
	return m.result, m.err
}
