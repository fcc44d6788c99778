package domain

import "time"

// Index provisioning defaults for ticket embeddings.
const (
	// EmbeddingDimension is the vector size produced by text-embedding-3-small.
	EmbeddingDimension = 1536

	// MetricCosine is the similarity metric used for text embeddings.
	MetricCosine = "cosine"

	// DefaultCloud and DefaultRegion place serverless indexes.
	DefaultCloud  = "aws"
	DefaultRegion = "us-east-1"

	// DefaultIndexSettle is how long to wait after creating an index before using it.
	DefaultIndexSettle = 5 * time.Second
)

// VectorRecord is the unit of storage in the vector index.
type VectorRecord struct {
	// ID is "<ticket_id>_<content hash>".
	ID string

	// Values is the embedding of the ticket text.
	Values []float32

	// Metadata is a flat mapping of scalar values (string, bool, int).
	Metadata map[string]any
}

// IndexSpec describes a vector index to create.
type IndexSpec struct {
	Name      string
	Dimension int
	Metric    string
	Cloud     string
	Region    string
}

// DefaultIndexSpec returns the IndexSpec used for ticket indexes.
func DefaultIndexSpec(name string) IndexSpec {
	return IndexSpec{
		Name:      name,
		Dimension: EmbeddingDimension,
		Metric:    MetricCosine,
		Cloud:     DefaultCloud,
		Region:    DefaultRegion,
	}
}

// IndexStats summarises the contents of a vector index.
type IndexStats struct {
	Dimension        int            `json:"dimension"`
	IndexFullness    float64        `json:"index_fullness"`
	TotalVectorCount int            `json:"total_vector_count"`
	Namespaces       map[string]int `json:"namespaces,omitempty"`
}

// VectorMatch is a similarity search hit.
type VectorMatch struct {
	ID       string
	Score    float64
	Metadata map[string]any
}
