package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sops-ai/internal/core/services"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output stats as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	store, err := current.openIndex(cmd.Context())
	if err != nil {
		return err
	}

	stats, err := services.NewIngestionService(current.embedder, store, current.runs).Stats(cmd.Context())
	if err != nil {
		return err
	}

	if statsJSON {
		return printJSON(cmd, stats)
	}

	cmd.Printf("Index:        %s\n", store.Name())
	cmd.Printf("Vectors:      %d\n", stats.TotalVectorCount)
	cmd.Printf("Dimension:    %d\n", stats.Dimension)
	cmd.Printf("Fullness:     %.4f\n", stats.IndexFullness)
	if len(stats.Namespaces) > 0 {
		cmd.Println("Namespaces:")
		names := make([]string, 0, len(stats.Namespaces))
		for name := range stats.Namespaces {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			label := name
			if label == "" {
				label = "(default)"
			}
			cmd.Printf("  %s: %d\n", label, stats.Namespaces[name])
		}
	}
	return nil
}
