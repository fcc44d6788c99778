package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driving"
	"github.com/custodia-labs/sops-ai/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestionService = (*IngestionService)(nil)

// contentHashSuffix matches the hash part of a record ID.
var contentHashSuffix = regexp.MustCompile(`^[0-9a-f]{8}$`)

// IngestionService embeds exported tickets and upserts them to a vector index.
// Tickets and batches are processed sequentially; a failing ticket or batch is
// reported in the result and never stops the run.
type IngestionService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	runs     driven.IngestRunStore

	now      func() time.Time
	newRunID func() string
}

// NewIngestionService creates a new ingestion service.
// The run store is optional - if nil, runs are not recorded.
func NewIngestionService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	runs driven.IngestRunStore,
) *IngestionService {
	return &IngestionService{
		embedder: embedder,
		store:    store,
		runs:     runs,
		now:      time.Now,
		newRunID: func() string { return uuid.New().String() },
	}
}

// Ingest runs the pipeline: process tickets, upsert batches, fetch stats, record the run.
func (s *IngestionService) Ingest(
	ctx context.Context,
	export *domain.TicketExport,
	opts domain.IngestOptions,
) (*domain.IngestReport, error) {
	if s.embedder == nil || s.store == nil {
		return nil, domain.ErrKnowledgeBaseUnavailable
	}
	if export == nil {
		return nil, fmt.Errorf("%w: nil export", domain.ErrInvalidInput)
	}
	if err := export.Validate(); err != nil {
		return nil, err
	}

	report := &domain.IngestReport{
		RunID:     s.newRunID(),
		IndexName: s.store.Name(),
		StartedAt: s.now(),
	}
	logger.Section("Ingestion " + report.RunID)

	process, err := s.ProcessTickets(ctx, export, opts.OnTicket)
	report.Process = process
	if err != nil {
		return s.interrupted(ctx, report, opts, err)
	}
	logger.Info("Processed %d/%d tickets", process.Succeeded(), process.Attempted())

	if process.Succeeded() == 0 {
		report.FinishedAt = s.now()
		s.record(ctx, report, opts)
		return report, domain.ErrNothingToIngest
	}

	if !opts.DryRun {
		upsert, err := s.UpsertRecords(ctx, process.Records, opts.BatchSize, opts.OnBatch)
		report.Upsert = upsert
		if err != nil {
			return s.interrupted(ctx, report, opts, err)
		}

		if opts.PruneStale {
			report.Upsert.Pruned = s.pruneStale(ctx, process.Records, upsert.Batches, batchSizeOrDefault(opts.BatchSize))
		}

		stats, err := s.store.DescribeStats(ctx)
		if err != nil {
			logger.Warn("Could not retrieve index stats: %v", err)
		} else {
			report.Stats = stats
		}
	}

	report.FinishedAt = s.now()
	s.record(ctx, report, opts)
	return report, nil
}

// ProcessTickets turns each ticket into a vector record.
// A ticket that fails any stage is skipped; its outcome carries the error.
// The loop only stops early when ctx is cancelled.
func (s *IngestionService) ProcessTickets(
	ctx context.Context,
	export *domain.TicketExport,
	onTicket func(domain.TicketOutcome),
) (domain.ProcessResult, error) {
	var result domain.ProcessResult
	if err := export.Validate(); err != nil {
		return result, err
	}
	info := *export.DashboardInfo

	logger.Info("Processing %d tickets", len(export.Tickets))

	for i := range export.Tickets {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		ticket := &export.Tickets[i]
		outcome := domain.TicketOutcome{Index: i + 1, TicketID: ticket.TicketID}

		record, err := s.processTicket(ctx, ticket, info)
		if err != nil {
			outcome.Err = err
			logger.Warn("Skipping ticket %s (%d/%d): %v", ticket.TicketID, i+1, len(export.Tickets), err)
		} else {
			outcome.RecordID = record.ID
			result.Records = append(result.Records, record)
			logger.Debug("Processed ticket %s (%d/%d)", ticket.TicketID, i+1, len(export.Tickets))
		}

		result.Outcomes = append(result.Outcomes, outcome)
		if onTicket != nil {
			onTicket(outcome)
		}
	}

	return result, nil
}

// processTicket runs project, embed, metadata and ID for one ticket.
func (s *IngestionService) processTicket(
	ctx context.Context,
	ticket *domain.Ticket,
	info domain.DashboardInfo,
) (domain.VectorRecord, error) {
	if err := ticket.Validate(); err != nil {
		return domain.VectorRecord{}, err
	}

	text := TicketText(ticket)

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		if !errors.Is(err, domain.ErrEmbeddingService) {
			err = fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
		}
		return domain.VectorRecord{}, err
	}
	if want := s.embedder.Dimensions(); want > 0 && len(embedding) != want {
		return domain.VectorRecord{}, fmt.Errorf("%w: got %d dimensions, want %d",
			domain.ErrEmbeddingService, len(embedding), want)
	}

	return domain.VectorRecord{
		ID:       RecordID(ticket),
		Values:   embedding,
		Metadata: TicketMetadata(ticket, info),
	}, nil
}

// UpsertRecords writes records in contiguous batches of batchSize (default 100).
// A rejected batch is reported and skipped; its records are not retried.
func (s *IngestionService) UpsertRecords(
	ctx context.Context,
	records []domain.VectorRecord,
	batchSize int,
	onBatch func(domain.BatchOutcome),
) (domain.UpsertResult, error) {
	batchSize = batchSizeOrDefault(batchSize)
	result := domain.UpsertResult{Attempted: len(records)}

	logger.Info("Upserting %d records to %s in batches of %d", len(records), s.store.Name(), batchSize)

	for start := 0; start < len(records); start += batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := min(start+batchSize, len(records))
		batch := records[start:end]
		outcome := domain.BatchOutcome{Index: start/batchSize + 1, Size: len(batch)}

		acked, err := s.store.Upsert(ctx, batch)
		if err != nil {
			outcome.Err = err
			logger.Warn("Batch %d rejected (%d records): %v", outcome.Index, len(batch), err)
		} else {
			outcome.Upserted = acked
			result.Upserted += len(batch)
			logger.Debug("Upserted batch %d: %d records (acknowledged %d)", outcome.Index, len(batch), acked)
		}

		result.Batches = append(result.Batches, outcome)
		if onBatch != nil {
			onBatch(outcome)
		}
	}

	logger.Info("Upserted %d/%d records", result.Upserted, result.Attempted)
	return result, nil
}

// pruneStale deletes older content versions of every record in a successful batch.
// Failures are logged and do not affect the run.
func (s *IngestionService) pruneStale(
	ctx context.Context,
	records []domain.VectorRecord,
	batches []domain.BatchOutcome,
	batchSize int,
) int {
	pruned := 0
	for _, batch := range batches {
		if !batch.OK() {
			continue
		}
		start := (batch.Index - 1) * batchSize
		for _, record := range records[start : start+batch.Size] {
			n, err := s.pruneRecord(ctx, record)
			if err != nil {
				logger.Warn("Could not prune stale versions of %s: %v", record.ID, err)
				continue
			}
			pruned += n
		}
	}
	return pruned
}

func (s *IngestionService) pruneRecord(ctx context.Context, record domain.VectorRecord) (int, error) {
	ticketID, _ := record.Metadata["ticket_id"].(string)
	if ticketID == "" {
		return 0, nil
	}
	prefix := RecordIDPrefix(ticketID)

	ids, err := s.store.ListIDs(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("list versions: %w", err)
	}

	var stale []string
	for _, id := range ids {
		// Another ticket's ID may share the prefix; only exact hash suffixes belong to this ticket.
		if id == record.ID || !contentHashSuffix.MatchString(strings.TrimPrefix(id, prefix)) {
			continue
		}
		stale = append(stale, id)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := s.store.Delete(ctx, stale); err != nil {
		return 0, fmt.Errorf("delete versions: %w", err)
	}
	logger.Debug("Pruned %d stale versions of %s", len(stale), ticketID)
	return len(stale), nil
}

// Stats summarises the target index.
func (s *IngestionService) Stats(ctx context.Context) (*domain.IndexStats, error) {
	if s.store == nil {
		return nil, domain.ErrKnowledgeBaseUnavailable
	}
	return s.store.DescribeStats(ctx)
}

// History returns recent ingestion runs. Returns nil when no run store is configured.
func (s *IngestionService) History(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.List(ctx, limit)
}

// record saves the run summary. A failure is a warning only.
// interrupted closes out a run stopped part way, keeping the partial report.
func (s *IngestionService) interrupted(
	ctx context.Context,
	report *domain.IngestReport,
	opts domain.IngestOptions,
	err error,
) (*domain.IngestReport, error) {
	logger.Warn("Ingestion %s stopped early: %v", report.RunID, err)
	report.FinishedAt = s.now()
	s.record(ctx, report, opts)
	return report, err
}

// record saves the run summary. The save outlives cancellation of ctx.
func (s *IngestionService) record(ctx context.Context, report *domain.IngestReport, opts domain.IngestOptions) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Save(context.WithoutCancel(ctx), report.Summary(opts.SourcePath, opts.DryRun)); err != nil {
		logger.Warn("Could not record ingestion run %s: %v", report.RunID, err)
	}
}

func batchSizeOrDefault(n int) int {
	if n <= 0 {
		return domain.DefaultBatchSize
	}
	return n
}
