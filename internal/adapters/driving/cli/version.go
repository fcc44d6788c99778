package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sops-ai/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version number",
	Annotations: map[string]string{skipAppAnnotation: ""},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("sops-ai version %s (MCP server %s)\n", version, mcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
