package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
)

// failingProvisioner cannot reach the index service.
type failingProvisioner struct{}

func (failingProvisioner) OpenIndex(context.Context, string) (driven.VectorStore, error) {
	return nil, errBoom
}

func (failingProvisioner) CreateIndex(context.Context, domain.IndexSpec) error {
	return errBoom
}

func testCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestBuildMCPPorts_Unconfigured(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{})

	ports := buildMCPPorts(testCommand(), a)

	assert.Nil(t, ports.WebSearch)
	assert.Nil(t, ports.KnowledgeBase)
	assert.Nil(t, ports.Request)
	assert.NotNil(t, ports.Ingestion, "run history stays available")
	assert.Same(t, a.config, ports.Config)
}

func TestBuildMCPPorts_KnowledgeBase(t *testing.T) {
	a, provisioner, _ := newTestApp(t, testEnv())
	require.NoError(t, provisioner.CreateIndex(context.Background(), a.indexSpec))

	ports := buildMCPPorts(testCommand(), a)

	require.NotNil(t, ports.KnowledgeBase)
	require.NotNil(t, ports.Ingestion)
	stats, err := ports.Ingestion.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testDimension, stats.Dimension)
}

func TestBuildMCPPorts_IndexUnreachable(t *testing.T) {
	a, _, _ := newTestApp(t, testEnv())
	a.provisioner = failingProvisioner{}

	ports := buildMCPPorts(testCommand(), a)

	assert.Nil(t, ports.KnowledgeBase)
	require.NotNil(t, ports.Ingestion)
	_, err := ports.Ingestion.Stats(context.Background())
	assert.ErrorIs(t, err, domain.ErrKnowledgeBaseUnavailable)
}

func TestMissingError(t *testing.T) {
	err := missingError(domain.FeatureStatus{
		Name:    domain.FeatureKnowledgeBase,
		Missing: []string{domain.EnvPineconeAPIKey, domain.EnvOpenAIAPIKey},
	}, domain.ErrKnowledgeBaseUnavailable)

	assert.ErrorIs(t, err, domain.ErrKnowledgeBaseUnavailable)
	assert.Contains(t, err.Error(), "PINECONE_API_KEY, OPENAI_API_KEY")
}
