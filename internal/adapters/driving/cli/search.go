package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/services"
)

var (
	searchTopK     int
	searchJSON     bool
	searchMetadata bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested tickets",
	Long: `Embeds the query and returns the most similar tickets from the
knowledge base index. This is the same search the kb_search tool runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", domain.DefaultKBTopK, "number of results")
	searchCmd.Flags().BoolVar(&searchMetadata, "metadata", false, "include record metadata")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := current.openIndex(cmd.Context())
	if err != nil {
		return err
	}

	kb := services.NewKnowledgeBaseService(current.embedder, store)
	resp, err := kb.Search(cmd.Context(), args[0], domain.KBSearchOptions{
		TopK:            searchTopK,
		IncludeMetadata: searchMetadata || searchJSON,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, resp)
	}
	outputSearchTable(cmd, resp)
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp *domain.KBSearchResponse) {
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Printf("Results from %s (%s):\n\n", resp.IndexName, resp.EmbeddingModel)
	for i, r := range resp.Results {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, r.ID, r.Score)
		if r.Source != "" {
			cmd.Printf("      Source: %s\n", r.Source)
		}
		if r.Text != "" {
			cmd.Printf("      %s\n", truncate(r.Text, 160))
		}
		for _, key := range []string{"ticket_id", "category", "priority", "status"} {
			if v, ok := r.Metadata[key]; ok {
				cmd.Printf("      %s: %v\n", key, v)
			}
		}
		cmd.Println()
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
