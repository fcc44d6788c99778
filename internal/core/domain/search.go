package domain

// Search depths accepted by the web search provider.
const (
	SearchDepthBasic    = "basic"
	SearchDepthAdvanced = "advanced"
)

// Tool defaults.
const (
	DefaultWebMaxResults = 5
	DefaultKBTopK        = 5
)

// WebSearchQuery configures a web search.
type WebSearchQuery struct {
	Query             string
	MaxResults        int
	SearchDepth       string
	IncludeAnswer     bool
	IncludeRawContent bool
	IncludeDomains    []string
	ExcludeDomains    []string
	IncludeImages     bool
}

// WebSearchResponse is the provider's answer to a web search.
type WebSearchResponse struct {
	Answer       string
	Results      []WebResult
	Images       []any
	ResponseTime float64
}

// WebResult is a single web page hit.
type WebResult struct {
	Title   string
	URL     string
	Content string
	Score   float64

	// RawContent is nil when the provider did not return page content.
	RawContent *string
}

// KBSearchOptions configures a knowledge base search.
type KBSearchOptions struct {
	TopK            int
	IncludeMetadata bool
}

// KBResult is a knowledge base hit.
type KBResult struct {
	ID     string
	Score  float64
	Text   string
	Source string

	// Metadata is set only when requested and present on the record.
	Metadata map[string]any
}

// KBSearchResponse is the answer to a knowledge base search.
type KBSearchResponse struct {
	Results        []KBResult
	EmbeddingModel string
	IndexName      string
}
