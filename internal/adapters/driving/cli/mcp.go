package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sops-ai/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/services"
	"github.com/custodia-labs/sops-ai/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the SOPS-AI Model Context Protocol server.

The server exposes three tools:
  web_search      - search the web through Tavily
  kb_search       - semantic search over ingested support tickets
  create_request  - submit a request to the helpdesk API

Tools whose settings are missing stay registered and answer with an error
naming the missing environment variables.

By default the server communicates over stdio. Use --port to serve the
streamable HTTP transport instead; Prometheus metrics are then available
at /metrics.

Examples:
  # Stdio mode (for desktop assistants)
  sops-ai mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  sops-ai mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "sops-ai": {
        "command": "/path/to/sops-ai",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(buildMCPPorts(cmd, current))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// buildMCPPorts wires the configured services. The knowledge base index is
// opened once at startup; if that fails kb_search stays unavailable.
func buildMCPPorts(cmd *cobra.Command, a *app) *mcp.Ports {
	ports := &mcp.Ports{Config: a.config}

	for _, feature := range a.config.Features() {
		if !feature.Enabled() {
			logger.Warn("%s disabled, missing: %v", feature.Name, feature.Missing)
		}
	}

	if a.webSearch != nil {
		ports.WebSearch = services.NewWebSearchService(a.webSearch)
	}
	if a.helpdesk != nil {
		ports.Request = services.NewRequestService(a.helpdesk)
	}

	if a.config.KnowledgeBase().Enabled() {
		store, err := a.openIndex(cmd.Context())
		if err != nil {
			logger.Warn("%s disabled: %v", domain.FeatureKnowledgeBase, err)
		} else {
			ports.KnowledgeBase = services.NewKnowledgeBaseService(a.embedder, store)
			ports.Ingestion = services.NewIngestionService(a.embedder, store, a.runs)
		}
	}

	if ports.Ingestion == nil && a.runs != nil {
		ports.Ingestion = services.NewIngestionService(nil, nil, a.runs)
	}

	return ports
}
