package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

func TestConfigSetAndGet(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{})

	out, err := runCLI(t, a, "config", "set", "pinecone.index_name", "support-kb")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved pinecone.index_name")

	out, err = runCLI(t, a, "config", "get", "PINECONE_INDEX_NAME")
	require.NoError(t, err)
	assert.Equal(t, "support-kb", strings.TrimSpace(out))
}

func TestConfigSet_BatchSize(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{})

	_, err := runCLI(t, a, "config", "set", "ingest.batch_size", "25")
	require.NoError(t, err)
	assert.Equal(t, 25, a.configStore.GetInt("ingest.batch_size"))

	_, err = runCLI(t, a, "config", "set", "ingest.batch_size", "zero")
	assert.Error(t, err)
}

func TestConfigSet_UnknownKey(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{})

	_, err := runCLI(t, a, "config", "set", "pinecone.namespace", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSet_WarnsWhenOverridden(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{domain.EnvTavilyAPIKey: "tvly-from-env"})

	out, err := runCLI(t, a, "config", "set", "tavily.api_key", "tvly-from-file")
	require.NoError(t, err)
	assert.Contains(t, out, "overridden by the TAVILY_API_KEY environment variable")
}

func TestConfigShow_MasksSecrets(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{})
	require.NoError(t, a.configStore.Set("openai.api_key", "sk-secret-1234"))
	require.NoError(t, a.configStore.Set("pinecone.region", "eu-west-1"))
	require.NoError(t, a.configStore.Set("legacy.mode", "full"))

	out, err := runCLI(t, a, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "sk-secret")
	assert.Contains(t, out, "1234")
	assert.Contains(t, out, "eu-west-1")
	assert.Contains(t, out, "ingest.batch_size")
	assert.Contains(t, out, "Ignored keys: legacy.mode")
}

func TestConfigPath(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{})

	out, err := runCLI(t, a, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, a.configStore.Path(), strings.TrimSpace(out))
}

func TestStatus(t *testing.T) {
	a, _, _ := newTestApp(t, map[string]string{
		domain.EnvTavilyAPIKey:   "tvly-abcdef",
		domain.EnvOpenAIAPIKey:   "sk-openai-9876",
		domain.EnvPineconeAPIKey: "pc-key",
	})

	out, err := runCLI(t, a, "status")
	require.NoError(t, err)

	assert.Contains(t, out, "web_search")
	assert.Contains(t, out, "configured")
	assert.Contains(t, out, "missing PINECONE_INDEX_NAME")
	assert.Contains(t, out, "missing REQUEST_SERVER_URL, REQUEST_ACCESS_TOKEN")
	assert.NotContains(t, out, "sk-openai")
	assert.Contains(t, out, "9876 [env]")
	assert.Contains(t, out, domain.DefaultEmbeddingModel)
	assert.Contains(t, out, a.runsPath)
}

func TestResolveKey(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"openai.api_key", "openai.api_key", false},
		{"OPENAI_API_KEY", "openai.api_key", false},
		{"request_server_url", "request.server_url", false},
		{"ingest.batch_size", "ingest.batch_size", false},
		{"nope", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveKey(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "héll...", truncate("héllo world", 4))
}
