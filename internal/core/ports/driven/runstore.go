package driven

import (
	"context"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// IngestRunStore persists summaries of ingestion runs.
type IngestRunStore interface {
	// Save records a finished run.
	Save(ctx context.Context, run domain.IngestRun) error

	// List returns the most recent runs, newest first.
	// A limit of 0 or less returns all runs.
	List(ctx context.Context, limit int) ([]domain.IngestRun, error)

	// Get returns a run by ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.IngestRun, error)
}
