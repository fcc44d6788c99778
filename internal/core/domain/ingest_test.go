package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProcessResult_Counts(t *testing.T) {
	result := ProcessResult{
		Records: []VectorRecord{{ID: "T-1_aaaaaaaa"}, {ID: "T-3_cccccccc"}},
		Outcomes: []TicketOutcome{
			{Index: 1, TicketID: "T-1", RecordID: "T-1_aaaaaaaa"},
			{Index: 2, TicketID: "T-2", Err: errors.New("boom")},
			{Index: 3, TicketID: "T-3", RecordID: "T-3_cccccccc"},
		},
	}

	assert.Equal(t, 3, result.Attempted())
	assert.Equal(t, 2, result.Succeeded())
	assert.Equal(t, 1, result.Skipped())

	failures := result.Failures()
	assert.Len(t, failures, 1)
	assert.Equal(t, "T-2", failures[0].TicketID)
}

func TestIngestReport_Summary(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	report := IngestReport{
		RunID:     "run-1",
		IndexName: "tickets",
		Process: ProcessResult{
			Records:  []VectorRecord{{ID: "a"}},
			Outcomes: []TicketOutcome{{TicketID: "a"}, {TicketID: "b", Err: errors.New("x")}},
		},
		Upsert: UpsertResult{
			Batches:   []BatchOutcome{{Index: 1, Size: 1, Err: errors.New("rejected")}},
			Attempted: 1,
		},
		StartedAt:  start,
		FinishedAt: start.Add(time.Second),
	}

	run := report.Summary("/tmp/tickets.json", false)

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "/tmp/tickets.json", run.SourcePath)
	assert.Equal(t, 2, run.TicketsAttempted)
	assert.Equal(t, 1, run.TicketsProcessed)
	assert.Equal(t, 1, run.RecordsAttempted)
	assert.Equal(t, 0, run.RecordsUpserted)
	assert.Equal(t, 1, run.FailedBatches)
}
