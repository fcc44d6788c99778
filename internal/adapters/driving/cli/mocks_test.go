package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sops-ai/internal/adapters/driven/config/env"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sops-ai/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

const testDimension = 4

// fakeEmbedder derives a small deterministic vector from the text.
type fakeEmbedder struct {
	failOn string
	calls  int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, fmt.Errorf("%w: rejected", domain.ErrEmbeddingService)
	}
	return []float32{
		float32(len(text)%7) + 1,
		float32(strings.Count(text, "e")) + 1,
		float32(strings.Count(text, "a")) + 1,
		1,
	}, nil
}

func (f *fakeEmbedder) Dimensions() int   { return testDimension }
func (f *fakeEmbedder) ModelName() string { return "fake-embedding" }
func (f *fakeEmbedder) Close() error      { return nil }

// testEnv is a complete knowledge base configuration.
func testEnv() map[string]string {
	return map[string]string{
		domain.EnvOpenAIAPIKey:      "sk-test-openai",
		domain.EnvPineconeAPIKey:    "pc-test-key",
		domain.EnvPineconeIndexName: "tickets",
	}
}

// newTestApp builds an app backed by in-memory indexes, a fake embedder and
// a sqlite run store in a temp dir.
func newTestApp(t *testing.T, vars map[string]string) (*app, *memory.Provisioner, *fakeEmbedder) {
	t.Helper()
	dir := t.TempDir()

	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)

	settings := env.Source{
		Store:      store,
		DotenvPath: filepath.Join(dir, ".env"),
		LookupEnv: func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		},
	}
	cfg, err := settings.Load()
	require.NoError(t, err)

	runStore, err := sqlite.NewStore(filepath.Join(dir, "data"))
	require.NoError(t, err)
	t.Cleanup(func() { runStore.Close() })

	provisioner := memory.NewProvisioner()
	embedder := &fakeEmbedder{}

	spec := domain.DefaultIndexSpec(cfg.PineconeIndexName)
	spec.Dimension = testDimension

	a := &app{
		config:      cfg,
		configStore: store,
		settings:    settings,
		provisioner: provisioner,
		runs:        runStore.RunStore(),
		runsPath:    runStore.Path(),
		indexSpec:   spec,
	}
	if cfg.OpenAIAPIKey != "" {
		a.embedder = embedder
	}
	return a, provisioner, embedder
}

// runCLI executes the root command against a prepared app and returns its output.
func runCLI(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	origNewApp := newApp
	newApp = func(string) (*app, error) { return a, nil }
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		newApp = origNewApp
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	require.NoError(t, closeApp())
	return buf.String(), err
}

// resetFlags restores every flag to its default so commands do not leak state between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

const sampleExport = `{
  "dashboardInfo": {"date": "2024-05-01", "time": "09:30", "location": "HQ"},
  "tickets": [
    {
      "ticketId": "INC-1",
      "subject": "VPN disconnects",
      "category": "Network",
      "priority": "High",
      "status": "Resolved",
      "requester": {"name": "Sam Lee", "email": "sam@example.com"},
      "userDescription": "VPN drops every few minutes",
      "updateHistory": ["Escalated"],
      "resolution": "Updated the VPN client"
    },
    {
      "ticketId": "INC-2",
      "subject": "Printer jammed",
      "category": "Hardware",
      "priority": "Low",
      "status": "Open",
      "requester": {"name": "Ana Ruiz", "email": "ana@example.com"},
      "userDescription": "Paper stuck in tray 2"
    }
  ]
}`

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

var errBoom = errors.New("boom")
