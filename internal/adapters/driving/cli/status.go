package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sops-ai/internal/adapters/driven/config/env"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and feature status",
	Long: `Reports which tools are usable with the current configuration, the
environment variables each disabled tool is missing, and where every
setting's value comes from (env, .env or config file).`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusStyles styles the status report. The zero value renders plain text.
type statusStyles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	OK      lipgloss.Style
	Missing lipgloss.Style
	Muted   lipgloss.Style
}

func plainStyles() statusStyles {
	s := lipgloss.NewStyle()
	return statusStyles{Title: s, Heading: s, OK: s, Missing: s, Muted: s}
}

func colourStyles() statusStyles {
	return statusStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		OK:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Missing: lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// stylesFor returns colour styles only when w is a terminal.
func stylesFor(w io.Writer) statusStyles {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return colourStyles()
	}
	return plainStyles()
}

func runStatus(cmd *cobra.Command, _ []string) error {
	st := stylesFor(cmd.OutOrStdout())
	cfg := current.config

	cmd.Println(st.Title.Render("SOPS-AI status"))
	cmd.Println()

	cmd.Println(st.Heading.Render("Tools"))
	features := append(cfg.Features(), cfg.Ingestion())
	for _, f := range features {
		if f.Enabled() {
			cmd.Printf("  %-16s %s\n", f.Name, st.OK.Render("configured"))
			continue
		}
		cmd.Printf("  %-16s %s\n", f.Name,
			st.Missing.Render("missing "+strings.Join(f.Missing, ", ")))
	}
	cmd.Println()

	cmd.Println(st.Heading.Render("Settings"))
	for _, setting := range env.Settings {
		origin, err := current.settings.Origin(setting)
		if err != nil {
			return err
		}
		value := displayValue(setting, effectiveValue(cfg, setting.Env))
		if value == "" {
			value = st.Muted.Render("(not set)")
		}
		if origin != "" {
			value += " " + st.Muted.Render("["+origin+"]")
		}
		cmd.Printf("  %-22s %s\n", setting.Env, value)
	}
	cmd.Printf("  %-22s %d\n", "batch size", cfg.BatchSize)
	cmd.Println()

	cmd.Println(st.Heading.Render("Files"))
	cmd.Printf("  config:  %s\n", current.configStore.Path())
	switch {
	case current.runs == nil:
		cmd.Printf("  runs:    %s\n", st.Missing.Render("unavailable"))
	case current.runsPath == "":
		cmd.Printf("  runs:    %s\n", st.Muted.Render("in memory"))
	default:
		cmd.Printf("  runs:    %s\n", current.runsPath)
	}
	return nil
}
