package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// Ingestion and knowledge base search must use the same model so that
// query vectors are comparable with stored ticket vectors.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Failures are reported wrapped in domain.ErrEmbeddingService.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1536).
	// This is determined by the model and must match the vector index.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
