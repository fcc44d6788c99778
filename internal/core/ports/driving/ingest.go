package driving

import (
	"context"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// IngestionService embeds ticket exports and writes them to the vector index.
type IngestionService interface {
	// Ingest runs the full pipeline for one export.
	// Per-ticket and per-batch failures are reported in the returned report;
	// only fatal failures are returned as errors.
	Ingest(ctx context.Context, export *domain.TicketExport, opts domain.IngestOptions) (*domain.IngestReport, error)

	// Stats summarises the target index.
	Stats(ctx context.Context) (*domain.IndexStats, error)

	// History returns recent ingestion runs, newest first.
	History(ctx context.Context, limit int) ([]domain.IngestRun, error)
}
