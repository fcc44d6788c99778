// Package memory provides an in-memory vector index for dry runs and tests.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
)

// Ensure implementations satisfy the interfaces.
var (
	_ driven.VectorStore      = (*Store)(nil)
	_ driven.IndexProvisioner = (*Provisioner)(nil)
)

// Store is an in-memory implementation of driven.VectorStore.
// Similarity is cosine, matching the remote index metric.
type Store struct {
	mu        sync.RWMutex
	name      string
	dimension int
	records   map[string]domain.VectorRecord
}

// NewStore creates an empty index. A dimension of 0 accepts vectors of any size.
func NewStore(name string, dimension int) *Store {
	return &Store{
		name:      name,
		dimension: dimension,
		records:   make(map[string]domain.VectorRecord),
	}
}

// Name returns the index name.
func (s *Store) Name() string {
	return s.name
}

// Upsert writes records, overwriting any with the same ID.
func (s *Store) Upsert(ctx context.Context, records []domain.VectorRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	for _, r := range records {
		if r.ID == "" {
			return 0, fmt.Errorf("%w: record id is empty", domain.ErrVectorStore)
		}
		if s.dimension > 0 && len(r.Values) != s.dimension {
			return 0, fmt.Errorf("%w: record %s has %d dimensions, index expects %d",
				domain.ErrVectorStore, r.ID, len(r.Values), s.dimension)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		s.records[r.ID] = copyRecord(r)
	}
	return len(records), nil
}

// Query returns the topK records most similar to vector.
func (s *Store) Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]domain.VectorMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return []domain.VectorMatch{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.VectorMatch, 0, len(s.records))
	for _, r := range s.records {
		m := domain.VectorMatch{ID: r.ID, Score: cosine(vector, r.Values)}
		if includeMetadata {
			m.Metadata = copyMetadata(r.Metadata)
		}
		matches = append(matches, m)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// DescribeStats summarises the index contents.
func (s *Store) DescribeStats(ctx context.Context) (*domain.IndexStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return &domain.IndexStats{
		Dimension:        s.dimension,
		TotalVectorCount: len(s.records),
		Namespaces:       map[string]int{"": len(s.records)},
	}, nil
}

// ListIDs returns the IDs of all records whose ID starts with prefix, sorted.
func (s *Store) ListIDs(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id := range s.records {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes records by ID.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.records, id)
	}
	return nil
}

// Get returns a copy of a record, for inspection in tests and dry runs.
func (s *Store) Get(id string) (domain.VectorRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return domain.VectorRecord{}, false
	}
	return copyRecord(r), true
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// Provisioner keeps named in-memory indexes.
type Provisioner struct {
	mu      sync.Mutex
	indexes map[string]*Store
}

// NewProvisioner creates a provisioner with no indexes.
func NewProvisioner() *Provisioner {
	return &Provisioner{indexes: make(map[string]*Store)}
}

// OpenIndex returns an existing index or an error wrapping domain.ErrNotFound.
func (p *Provisioner) OpenIndex(_ context.Context, name string) (driven.VectorStore, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.indexes[name]
	if !ok {
		return nil, fmt.Errorf("index %q: %w", name, domain.ErrNotFound)
	}
	return idx, nil
}

// CreateIndex creates a new empty index. Creating an existing index is an error.
func (p *Provisioner) CreateIndex(_ context.Context, spec domain.IndexSpec) error {
	if spec.Name == "" {
		return domain.NewValidationError("name", "index name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.indexes[spec.Name]; ok {
		return fmt.Errorf("%w: index %q already exists", domain.ErrVectorStore, spec.Name)
	}
	p.indexes[spec.Name] = NewStore(spec.Name, spec.Dimension)
	return nil
}

// cosine returns the cosine similarity of a and b, or 0 if either is zero
// or their lengths differ.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func copyRecord(r domain.VectorRecord) domain.VectorRecord {
	values := make([]float32, len(r.Values))
	copy(values, r.Values)
	return domain.VectorRecord{ID: r.ID, Values: values, Metadata: copyMetadata(r.Metadata)}
}

func copyMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
