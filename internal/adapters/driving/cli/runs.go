package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sops-ai/internal/core/services"
)

var (
	runsLimit int
	runsJSON  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent ingestion runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs (0 = all)")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "output runs as JSON")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if current.runs == nil {
		return errors.New("run history is not available")
	}

	runs, err := services.NewIngestionService(nil, nil, current.runs).History(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}

	if runsJSON {
		return printJSON(cmd, runs)
	}

	if len(runs) == 0 {
		cmd.Println("No ingestion runs recorded.")
		return nil
	}

	for _, r := range runs {
		mode := ""
		if r.DryRun {
			mode = " (dry run)"
		}
		cmd.Printf("%s  %s%s\n", r.StartedAt.Local().Format(time.DateTime), r.ID, mode)
		cmd.Printf("    source: %s\n", r.SourcePath)
		cmd.Printf("    index:  %s\n", r.IndexName)
		cmd.Printf("    tickets %d/%d, records %d/%d, failed batches %d, took %s\n",
			r.TicketsProcessed, r.TicketsAttempted,
			r.RecordsUpserted, r.RecordsAttempted,
			r.FailedBatches, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	}
	return nil
}
