package domain

// Environment variable names.
const (
	EnvTavilyAPIKey       = "TAVILY_API_KEY"
	EnvOpenAIAPIKey       = "OPENAI_API_KEY"
	EnvEmbeddingModel     = "EMBEDDING_MODEL"
	EnvPineconeAPIKey     = "PINECONE_API_KEY"
	EnvPineconeIndexName  = "PINECONE_INDEX_NAME"
	EnvPineconeCloud      = "PINECONE_CLOUD"
	EnvPineconeRegion     = "PINECONE_REGION"
	EnvRequestServerURL   = "REQUEST_SERVER_URL"
	EnvRequestAccessToken = "REQUEST_ACCESS_TOKEN"
	EnvHome               = "SOPS_AI_HOME"
)

// DefaultEmbeddingModel is the OpenAI model used for tickets and queries.
const DefaultEmbeddingModel = "text-embedding-3-small"

// AppConfig is the resolved configuration for one process.
type AppConfig struct {
	TavilyAPIKey       string
	OpenAIAPIKey       string
	EmbeddingModel     string
	PineconeAPIKey     string
	PineconeIndexName  string
	PineconeCloud      string
	PineconeRegion     string
	RequestServerURL   string
	RequestAccessToken string
	BatchSize          int
}

// Feature names used in configuration reports.
const (
	FeatureWebSearch     = "web_search"
	FeatureKnowledgeBase = "kb_search"
	FeatureRequestAPI    = "create_request"
	FeatureIngestion     = "ingest"
)

// FeatureStatus reports whether a feature has the settings it needs.
type FeatureStatus struct {
	Name    string
	Missing []string
}

// Enabled returns true if nothing is missing.
func (f FeatureStatus) Enabled() bool {
	return len(f.Missing) == 0
}

// WebSearch reports the web search settings.
func (c *AppConfig) WebSearch() FeatureStatus {
	return FeatureStatus{Name: FeatureWebSearch, Missing: missing(
		EnvTavilyAPIKey, c.TavilyAPIKey,
	)}
}

// KnowledgeBase reports the settings needed to search the vector index.
func (c *AppConfig) KnowledgeBase() FeatureStatus {
	return FeatureStatus{Name: FeatureKnowledgeBase, Missing: missing(
		EnvPineconeAPIKey, c.PineconeAPIKey,
		EnvPineconeIndexName, c.PineconeIndexName,
		EnvOpenAIAPIKey, c.OpenAIAPIKey,
	)}
}

// RequestAPI reports the helpdesk API settings.
func (c *AppConfig) RequestAPI() FeatureStatus {
	return FeatureStatus{Name: FeatureRequestAPI, Missing: missing(
		EnvRequestServerURL, c.RequestServerURL,
		EnvRequestAccessToken, c.RequestAccessToken,
	)}
}

// Ingestion reports the settings needed by the ingest command.
func (c *AppConfig) Ingestion() FeatureStatus {
	status := c.KnowledgeBase()
	status.Name = FeatureIngestion
	return status
}

// Features returns the status of every tool feature.
func (c *AppConfig) Features() []FeatureStatus {
	return []FeatureStatus{c.WebSearch(), c.KnowledgeBase(), c.RequestAPI()}
}

// missing takes name/value pairs and returns the names with empty values.
func missing(pairs ...string) []string {
	var names []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			names = append(names, pairs[i])
		}
	}
	return names
}
