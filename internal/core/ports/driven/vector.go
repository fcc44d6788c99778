package driven

import (
	"context"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// VectorStore is a handle to one external vector index.
// The index owns its own structure; callers only write, read and inspect records.
type VectorStore interface {
	// Name returns the index name.
	Name() string

	// Upsert writes records, overwriting any with the same ID.
	// Returns the number of records acknowledged by the store.
	Upsert(ctx context.Context, records []domain.VectorRecord) (int, error)

	// Query returns the topK records most similar to vector.
	Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]domain.VectorMatch, error)

	// DescribeStats summarises the index contents.
	DescribeStats(ctx context.Context) (*domain.IndexStats, error)

	// ListIDs returns the IDs of all records whose ID starts with prefix.
	ListIDs(ctx context.Context, prefix string) ([]string, error)

	// Delete removes records by ID. Unknown IDs are ignored.
	Delete(ctx context.Context, ids []string) error

	// Close releases resources.
	Close() error
}

// IndexProvisioner opens and creates named vector indexes.
type IndexProvisioner interface {
	// OpenIndex returns a handle to an existing index.
	// Returns an error wrapping domain.ErrNotFound if the index does not exist.
	OpenIndex(ctx context.Context, name string) (VectorStore, error)

	// CreateIndex creates a new index.
	CreateIndex(ctx context.Context, spec domain.IndexSpec) error
}
