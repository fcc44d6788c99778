package domain

import "time"

// DefaultBatchSize is the number of vector records sent per upsert call.
const DefaultBatchSize = 100

// MetadataSource labels every record produced from the dashboard export.
const MetadataSource = "IT_Service_Desk_Dashboard"

// ResolutionSummaryLimit is the maximum length, in characters, of resolution_summary.
const ResolutionSummaryLimit = 200

// TicketOutcome is the result of processing one ticket.
// Err is nil when a vector record was produced.
type TicketOutcome struct {
	// Index is the 1-based position of the ticket in the export.
	Index int

	TicketID string
	RecordID string
	Err      error
}

// OK returns true if the ticket produced a vector record.
func (o TicketOutcome) OK() bool {
	return o.Err == nil
}

// ProcessResult collects the output of the ticket processing loop.
type ProcessResult struct {
	// Records holds one record per successful ticket, in input order.
	Records []VectorRecord

	// Outcomes holds one entry per attempted ticket, in input order.
	Outcomes []TicketOutcome
}

// Attempted returns the number of tickets processed.
func (r *ProcessResult) Attempted() int {
	return len(r.Outcomes)
}

// Succeeded returns the number of tickets that produced a record.
func (r *ProcessResult) Succeeded() int {
	return len(r.Records)
}

// Skipped returns the number of tickets that failed.
func (r *ProcessResult) Skipped() int {
	return r.Attempted() - r.Succeeded()
}

// Failures returns the outcomes of failed tickets.
func (r *ProcessResult) Failures() []TicketOutcome {
	var failed []TicketOutcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// BatchOutcome is the result of one upsert call.
type BatchOutcome struct {
	// Index is the 1-based batch number.
	Index int

	// Size is the number of records in the batch.
	Size int

	// Upserted is the count acknowledged by the store.
	Upserted int

	Err error
}

// OK returns true if the batch was accepted.
func (o BatchOutcome) OK() bool {
	return o.Err == nil
}

// UpsertResult collects the output of the batch upserter.
type UpsertResult struct {
	Batches []BatchOutcome

	// Attempted is the number of records submitted.
	Attempted int

	// Upserted is the number of records in successful batches.
	Upserted int

	// Pruned is the number of stale content versions deleted.
	Pruned int
}

// FailedBatches returns the outcomes of rejected batches.
func (r *UpsertResult) FailedBatches() []BatchOutcome {
	var failed []BatchOutcome
	for _, b := range r.Batches {
		if !b.OK() {
			failed = append(failed, b)
		}
	}
	return failed
}

// IngestOptions configures an ingestion run.
type IngestOptions struct {
	// SourcePath is recorded in the run history.
	SourcePath string

	// BatchSize is the number of records per upsert (default 100).
	BatchSize int

	// DryRun processes tickets without writing to the index.
	DryRun bool

	// PruneStale deletes older content versions of re-ingested tickets.
	PruneStale bool

	// OnTicket, when set, is called after each ticket is processed.
	OnTicket func(TicketOutcome)

	// OnBatch, when set, is called after each upsert call.
	OnBatch func(BatchOutcome)
}

// IngestReport is the outcome of an ingestion run.
type IngestReport struct {
	RunID     string
	IndexName string
	Process   ProcessResult
	Upsert    UpsertResult

	// Stats is nil when the index stats could not be retrieved.
	Stats *IndexStats

	StartedAt  time.Time
	FinishedAt time.Time
}

// IngestRun is the persisted summary of an ingestion run.
type IngestRun struct {
	ID               string    `json:"id"`
	SourcePath       string    `json:"source_path"`
	IndexName        string    `json:"index_name"`
	DryRun           bool      `json:"dry_run"`
	TicketsAttempted int       `json:"tickets_attempted"`
	TicketsProcessed int       `json:"tickets_processed"`
	RecordsAttempted int       `json:"records_attempted"`
	RecordsUpserted  int       `json:"records_upserted"`
	FailedBatches    int       `json:"failed_batches"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
}

// Summary builds the persisted form of the report.
func (r *IngestReport) Summary(sourcePath string, dryRun bool) IngestRun {
	return IngestRun{
		ID:               r.RunID,
		SourcePath:       sourcePath,
		IndexName:        r.IndexName,
		DryRun:           dryRun,
		TicketsAttempted: r.Process.Attempted(),
		TicketsProcessed: r.Process.Succeeded(),
		RecordsAttempted: r.Upsert.Attempted,
		RecordsUpserted:  r.Upsert.Upserted,
		FailedBatches:    len(r.Upsert.FailedBatches()),
		StartedAt:        r.StartedAt,
		FinishedAt:       r.FinishedAt,
	}
}
