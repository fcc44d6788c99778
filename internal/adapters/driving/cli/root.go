// Package cli implements the sops-ai command line.
//
// Every command except version resolves configuration and builds its
// adapters in the root command's PersistentPreRunE. Missing settings are not
// fatal there: each command checks the features it needs.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sops-ai/internal/logger"
)

// skipAppAnnotation marks commands that run without configuration.
const skipAppAnnotation = "sops-ai/skip-app"

var (
	version = "dev"

	verbose   bool
	configDir string

	// newApp builds the adapters for a command. Tests replace it.
	newApp = buildApp

	// current is the app built for the running command.
	current *app
)

var rootCmd = &cobra.Command{
	Use:   "sops-ai",
	Short: "IT support tooling for AI assistants",
	Long: `sops-ai ingests IT Service Desk ticket exports into a vector index and
serves web search, knowledge base search and helpdesk request creation to
AI assistants over the Model Context Protocol.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default $SOPS_AI_HOME or ~/.sops-ai)")
}

func setupApp(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if _, skip := cmd.Annotations[skipAppAnnotation]; skip {
		return nil
	}

	if err := closeApp(); err != nil {
		logger.Warn("Closing previous adapters: %v", err)
	}

	a, err := newApp(configDir)
	if err != nil {
		return err
	}
	current = a
	return nil
}

func closeApp() error {
	if current == nil {
		return nil
	}
	err := current.Close()
	current = nil
	return err
}

// Execute runs the root command with the given build version.
// Cancelling ctx stops long-running commands such as ingest and mcp serve.
func Execute(ctx context.Context, v string) error {
	version = v
	rootCmd.SetOut(os.Stdout)
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, closeApp())
}
