package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sops-ai/internal/adapters/driven/ticketfile"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
	"github.com/custodia-labs/sops-ai/internal/core/services"
)

// dryRunIndexName names the in-memory index when no index is configured.
const dryRunIndexName = "dry-run"

var (
	ingestBatchSize  int
	ingestDryRun     bool
	ingestPruneStale bool
	ingestJSON       bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a service desk ticket export",
	Long: `Reads an IT Service Desk dashboard export, embeds every ticket and
upserts the vectors to the knowledge base index, creating the index if it
does not exist.

Tickets that fail to embed and batches the index rejects are reported and
skipped; the command fails only when the export cannot be read or no ticket
could be processed.

Use --dry-run to process tickets into an in-memory index without touching
the configured one. Use --prune-stale to delete older content versions of
re-ingested tickets.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVarP(&ingestBatchSize, "batch-size", "b", domain.DefaultBatchSize, "records per upsert call")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "embed tickets without writing to the index")
	ingestCmd.Flags().BoolVar(&ingestPruneStale, "prune-stale", false, "delete older versions of re-ingested tickets")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "print the run summary as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()

	export, err := ticketfile.Load(path)
	if err != nil {
		return err
	}
	if !ingestJSON {
		cmd.Printf("Loaded %d tickets from %s\n", len(export.Tickets), path)
	}

	store, err := ingestTarget(cmd)
	if err != nil {
		return err
	}

	batchSize := ingestBatchSize
	if !cmd.Flags().Changed("batch-size") && current.config.BatchSize > 0 {
		batchSize = current.config.BatchSize
	}

	opts := domain.IngestOptions{
		SourcePath: path,
		BatchSize:  batchSize,
		DryRun:     ingestDryRun,
		PruneStale: ingestPruneStale,
	}
	if !ingestJSON {
		total := len(export.Tickets)
		opts.OnTicket = func(o domain.TicketOutcome) {
			if o.OK() {
				cmd.Printf("Processed ticket %d/%d: %s\n", o.Index, total, o.TicketID)
			} else {
				cmd.Printf("Error processing ticket %s: %v\n", o.TicketID, o.Err)
			}
		}
		opts.OnBatch = func(o domain.BatchOutcome) {
			if o.OK() {
				cmd.Printf("Upserted batch %d: %d vectors\n", o.Index, o.Upserted)
			} else {
				cmd.Printf("Error upserting batch %d: %v\n", o.Index, o.Err)
			}
		}
	}

	ingestion := services.NewIngestionService(current.embedder, store, current.runs)
	report, err := ingestion.Ingest(ctx, export, opts)
	if report != nil {
		if ingestJSON {
			if jerr := printJSON(cmd, report.Summary(path, ingestDryRun)); jerr != nil {
				return jerr
			}
		} else {
			printIngestReport(cmd, report, ingestDryRun)
		}
	}
	if errors.Is(err, domain.ErrNothingToIngest) {
		return fmt.Errorf("ingesting %s: %w", path, err)
	}
	return err
}

// ingestTarget returns the index to write to: a fresh in-memory index for dry
// runs, otherwise the configured index, created if missing.
func ingestTarget(cmd *cobra.Command) (driven.VectorStore, error) {
	if !ingestDryRun {
		return current.ensureIndex(cmd.Context())
	}
	if current.embedder == nil {
		return nil, missingError(domain.FeatureStatus{
			Name:    domain.FeatureIngestion,
			Missing: []string{domain.EnvOpenAIAPIKey},
		}, domain.ErrEmbeddingService)
	}
	name := current.indexSpec.Name
	if name == "" {
		name = dryRunIndexName
	}
	return memory.NewStore(name, current.embedder.Dimensions()), nil
}

func printIngestReport(cmd *cobra.Command, report *domain.IngestReport, dryRun bool) {
	cmd.Println(strings.Repeat("=", 60))
	cmd.Printf("Run %s on index %s\n", report.RunID, report.IndexName)
	cmd.Printf("Processed %d/%d tickets\n", report.Process.Succeeded(), report.Process.Attempted())
	if dryRun {
		cmd.Println("Dry run: nothing was written to the index.")
		return
	}
	cmd.Printf("Upserted %d/%d records\n", report.Upsert.Upserted, report.Upsert.Attempted)
	if failed := len(report.Upsert.FailedBatches()); failed > 0 {
		cmd.Printf("Failed batches: %d\n", failed)
	}
	if report.Upsert.Pruned > 0 {
		cmd.Printf("Pruned %d stale records\n", report.Upsert.Pruned)
	}
	if report.Stats != nil {
		cmd.Printf("Index stats: %d vectors, dimension %d, fullness %.4f\n",
			report.Stats.TotalVectorCount, report.Stats.Dimension, report.Stats.IndexFullness)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
