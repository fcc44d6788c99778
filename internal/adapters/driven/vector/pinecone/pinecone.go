package pinecone

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
)

// Ensure implementations satisfy the interfaces.
var (
	_ driven.IndexProvisioner = (*Provisioner)(nil)
	_ driven.VectorStore      = (*Store)(nil)
)

// listPageSize is the page size used when listing IDs by prefix.
const listPageSize = 100

// Config holds configuration for the Pinecone client.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string
}

// Provisioner opens and creates serverless indexes.
type Provisioner struct {
	client *pinecone.Client
}

// NewProvisioner creates a Pinecone control-plane client.
func NewProvisioner(cfg Config) (*Provisioner, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("pinecone: API key is required")
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("%w: pinecone: creating client: %w", domain.ErrVectorStore, err)
	}
	return &Provisioner{client: client}, nil
}

// OpenIndex resolves the index host and opens a data-plane connection.
func (p *Provisioner) OpenIndex(ctx context.Context, name string) (driven.VectorStore, error) {
	idx, err := p.client.DescribeIndex(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("pinecone: index %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: pinecone: describing index %q: %w", domain.ErrVectorStore, name, err)
	}

	conn, err := p.client.Index(pinecone.NewIndexConnParams{Host: idx.Host})
	if err != nil {
		return nil, fmt.Errorf("%w: pinecone: connecting to index %q: %w", domain.ErrVectorStore, name, err)
	}
	return &Store{name: name, conn: conn}, nil
}

// CreateIndex creates a serverless index.
func (p *Provisioner) CreateIndex(ctx context.Context, spec domain.IndexSpec) error {
	if spec.Name == "" {
		return domain.NewValidationError("name", "index name is required")
	}

	dimension := int32(spec.Dimension)
	metric := pinecone.IndexMetric(spec.Metric)
	_, err := p.client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:      spec.Name,
		Dimension: &dimension,
		Metric:    &metric,
		Cloud:     pinecone.Cloud(spec.Cloud),
		Region:    spec.Region,
	})
	if err != nil {
		return fmt.Errorf("%w: pinecone: creating index %q: %w", domain.ErrVectorStore, spec.Name, err)
	}
	return nil
}

// Store is a connection to one Pinecone index.
type Store struct {
	name string
	conn *pinecone.IndexConnection
}

// Name returns the index name.
func (s *Store) Name() string {
	return s.name
}

// Upsert writes records in a single request.
func (s *Store) Upsert(ctx context.Context, records []domain.VectorRecord) (int, error) {
	vectors, err := toVectors(records)
	if err != nil {
		return 0, err
	}

	count, err := s.conn.UpsertVectors(ctx, vectors)
	if err != nil {
		return 0, fmt.Errorf("%w: pinecone: upsert: %w", domain.ErrVectorStore, err)
	}
	return int(count), nil
}

// Query runs a similarity search against the index.
func (s *Store) Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]domain.VectorMatch, error) {
	if topK <= 0 {
		return []domain.VectorMatch{}, nil
	}

	resp, err := s.conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: includeMetadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: pinecone: query: %w", domain.ErrVectorStore, err)
	}
	return fromScored(resp.Matches), nil
}

// DescribeStats returns index-level statistics.
func (s *Store) DescribeStats(ctx context.Context) (*domain.IndexStats, error) {
	resp, err := s.conn.DescribeIndexStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: pinecone: describe stats: %w", domain.ErrVectorStore, err)
	}

	stats := &domain.IndexStats{
		IndexFullness:    float64(resp.IndexFullness),
		TotalVectorCount: int(resp.TotalVectorCount),
		Namespaces:       make(map[string]int, len(resp.Namespaces)),
	}
	if resp.Dimension != nil {
		stats.Dimension = int(*resp.Dimension)
	}
	for name, ns := range resp.Namespaces {
		if ns != nil {
			stats.Namespaces[name] = int(ns.VectorCount)
		}
	}
	return stats, nil
}

// ListIDs pages through all IDs that start with prefix.
func (s *Store) ListIDs(ctx context.Context, prefix string) ([]string, error) {
	limit := uint32(listPageSize)
	var ids []string
	var token *string

	for {
		resp, err := s.conn.ListVectors(ctx, &pinecone.ListVectorsRequest{
			Prefix:          &prefix,
			Limit:           &limit,
			PaginationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: pinecone: list ids: %w", domain.ErrVectorStore, err)
		}
		for _, id := range resp.VectorIds {
			if id != nil {
				ids = append(ids, *id)
			}
		}
		if resp.NextPaginationToken == nil || *resp.NextPaginationToken == "" {
			return ids, nil
		}
		token = resp.NextPaginationToken
	}
}

// Delete removes records by ID.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.conn.DeleteVectorsById(ctx, ids); err != nil {
		return fmt.Errorf("%w: pinecone: delete: %w", domain.ErrVectorStore, err)
	}
	return nil
}

// Close closes the data-plane connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// toVectors converts records to the SDK form. Metadata must be flat scalars.
func toVectors(records []domain.VectorRecord) ([]*pinecone.Vector, error) {
	vectors := make([]*pinecone.Vector, 0, len(records))
	for _, r := range records {
		values := r.Values
		v := &pinecone.Vector{Id: r.ID, Values: &values}
		if len(r.Metadata) > 0 {
			md, err := structpb.NewStruct(r.Metadata)
			if err != nil {
				return nil, fmt.Errorf("%w: record %s: metadata: %w", domain.ErrVectorStore, r.ID, err)
			}
			v.Metadata = md
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

func fromScored(scored []*pinecone.ScoredVector) []domain.VectorMatch {
	matches := make([]domain.VectorMatch, 0, len(scored))
	for _, sv := range scored {
		if sv == nil || sv.Vector == nil {
			continue
		}
		m := domain.VectorMatch{ID: sv.Vector.Id, Score: float64(sv.Score)}
		if sv.Vector.Metadata != nil {
			m.Metadata = sv.Vector.Metadata.AsMap()
		}
		matches = append(matches, m)
	}
	return matches
}

// isNotFound reports whether a control-plane error is an HTTP 404.
func isNotFound(err error) bool {
	var pe *pinecone.PineconeError
	return errors.As(err, &pe) && pe.Code == http.StatusNotFound
}
