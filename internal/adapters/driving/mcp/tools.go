package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/logger"
)

// Tool names.
const (
	toolWebSearch     = "web_search"
	toolKBSearch      = "kb_search"
	toolCreateRequest = "create_request"
)

// WebSearchInput is the input schema for the web_search tool.
type WebSearchInput struct {
	Query             string   `json:"query" jsonschema:"the search query string"`
	MaxResults        int      `json:"max_results,omitempty" jsonschema:"maximum number of search results to return (default 5)"`
	SearchDepth       string   `json:"search_depth,omitempty" jsonschema:"search depth: basic or advanced (default basic)"`
	IncludeAnswer     *bool    `json:"include_answer,omitempty" jsonschema:"whether to include a direct answer (default true)"`
	IncludeRawContent bool     `json:"include_raw_content,omitempty" jsonschema:"whether to include raw page content (default false)"`
	IncludeDomains    []string `json:"include_domains,omitempty" jsonschema:"domains to include in the search"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty" jsonschema:"domains to exclude from the search"`
	IncludeImages     bool     `json:"include_images,omitempty" jsonschema:"whether to include images (default false)"`
}

// WebSearchOutput is the output schema for the web_search tool.
type WebSearchOutput struct {
	Query    string             `json:"query,omitempty"`
	Answer   string             `json:"answer"`
	Results  []WebResultOutput  `json:"results"`
	Images   []any              `json:"images,omitempty"`
	Metadata *WebSearchMetadata `json:"metadata,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// WebResultOutput is a single web page hit.
type WebResultOutput struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
	RawContent *string `json:"raw_content,omitempty"`
}

// WebSearchMetadata describes a web search.
type WebSearchMetadata struct {
	TotalResults int     `json:"total_results"`
	SearchDepth  string  `json:"search_depth"`
	ResponseTime float64 `json:"response_time"`
}

// KBSearchInput is the input schema for the kb_search tool.
type KBSearchInput struct {
	Query           string `json:"query" jsonschema:"the search query string"`
	TopK            int    `json:"top_k,omitempty" jsonschema:"number of similar records to return (default 5)"`
	IncludeMetadata *bool  `json:"include_metadata,omitempty" jsonschema:"whether to include record metadata (default true)"`
}

// KBSearchOutput is the output schema for the kb_search tool.
type KBSearchOutput struct {
	Query    string            `json:"query,omitempty"`
	Results  []KBResultOutput  `json:"results"`
	Metadata *KBSearchMetadata `json:"metadata,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// KBResultOutput is a knowledge base hit.
type KBResultOutput struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Text     string         `json:"text"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// KBSearchMetadata describes a knowledge base search.
type KBSearchMetadata struct {
	TotalResults   int    `json:"total_results"`
	EmbeddingModel string `json:"embedding_model"`
	IndexName      string `json:"index_name"`
}

// CreateRequestInput is the input schema for the create_request tool.
//
//nolint:lll // Schema descriptions are kept on one line.
type CreateRequestInput struct {
	Subject             string              `json:"subject" jsonschema:"subject of the ticket"`
	RequesterEmail      string              `json:"requester_email" jsonschema:"email address of the user registered for the client"`
	CategoryName        string              `json:"category_name,omitempty" jsonschema:"category name of the request (default Request)"`
	CCEmailSet          []string            `json:"cc_email_set,omitempty" jsonschema:"email addresses for notifications"`
	Tags                []string            `json:"tags,omitempty" jsonschema:"additional identifiers attached to the ticket"`
	ImpactName          string              `json:"impact_name,omitempty" jsonschema:"effect of the request: Low, On User, On department or Or On Business (default Low)"`
	PriorityName        string              `json:"priority_name,omitempty" jsonschema:"importance: Low, Medium, High or Urgent (default Low)"`
	UrgencyName         string              `json:"urgency_name,omitempty" jsonschema:"urgency: Low, Medium, High or Urgent (default Low)"`
	DepartmentName      string              `json:"department_name,omitempty" jsonschema:"department information"`
	LocationName        string              `json:"location_name,omitempty" jsonschema:"location where the request happened"`
	SupportLevel        string              `json:"support_level,omitempty" jsonschema:"support level: Tier1, Tier2, Tier3 or Tier4 (default Tier1)"`
	Spam                bool                `json:"spam,omitempty" jsonschema:"whether the request is spam (default false)"`
	AssigneeEmail       string              `json:"assignee_email,omitempty" jsonschema:"email of the assignee"`
	TechnicianGroupName string              `json:"technician_group_name,omitempty" jsonschema:"name of the technician group"`
	Source              string              `json:"source,omitempty" jsonschema:"origin of the ticket (default External)"`
	StatusName          string              `json:"status_name,omitempty" jsonschema:"status: Open, In Progress, Pending, Resolved or Closed (default Open)"`
	Description         string              `json:"description,omitempty" jsonschema:"additional description of the request"`
	CustomField         map[string]any      `json:"custom_field,omitempty" jsonschema:"custom field key-value pairs"`
	LinkAssetIDs        []map[string]any    `json:"link_asset_ids,omitempty" jsonschema:"assets to link, e.g. [{assetModel: asset_hardware, assetId: 1}]"`
	LinkCIIDs           []map[string]any    `json:"link_ci_ids,omitempty" jsonschema:"configuration items to link, e.g. [{ciId: 2, ciModel: cmdb}]"`
	FileAttachments     []map[string]string `json:"file_attachments,omitempty" jsonschema:"file attachments, e.g. [{refFileName: abc, realName: xyz.pdf}]"`
}

// CreateRequestOutput is the output schema for the create_request tool.
type CreateRequestOutput struct {
	Success     bool           `json:"success,omitempty"`
	Message     string         `json:"message,omitempty"`
	RequestData any            `json:"request_data,omitempty"`
	RawResponse string         `json:"raw_response,omitempty"`
	Error       string         `json:"error,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolWebSearch,
		Description: "Search the web using Tavily. Returns an optional direct answer, ranked pages and search metadata.",
	}, s.handleWebSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolKBSearch,
		Description: "Search the IT support knowledge base of ingested helpdesk tickets by semantic similarity.",
	}, s.handleKBSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolCreateRequest,
		Description: "Create a new request/ticket in the helpdesk system.",
	}, s.handleCreateRequest)
}

// handleWebSearch handles the web_search tool invocation.
func (s *Server) handleWebSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input WebSearchInput,
) (*mcp.CallToolResult, WebSearchOutput, error) {
	start := time.Now()

	if s.ports.WebSearch == nil {
		return fail(s, toolWebSearch, outcomeUnavailable, start, webSearchError(msgWebSearchUnavailable))
	}

	query := domain.WebSearchQuery{
		Query:             input.Query,
		MaxResults:        input.MaxResults,
		SearchDepth:       input.SearchDepth,
		IncludeAnswer:     boolOr(input.IncludeAnswer, true),
		IncludeRawContent: input.IncludeRawContent,
		IncludeDomains:    input.IncludeDomains,
		ExcludeDomains:    input.ExcludeDomains,
		IncludeImages:     input.IncludeImages,
	}
	if query.MaxResults <= 0 {
		query.MaxResults = domain.DefaultWebMaxResults
	}
	if query.SearchDepth == "" {
		query.SearchDepth = domain.SearchDepthBasic
	}

	resp, err := s.ports.WebSearch.Search(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWebSearchUnavailable):
			return fail(s, toolWebSearch, outcomeUnavailable, start, webSearchError(msgWebSearchUnavailable))
		case errors.Is(err, domain.ErrInvalidInput):
			return fail(s, toolWebSearch, outcomeError, start, webSearchError(err.Error()))
		default:
			return fail(s, toolWebSearch, outcomeError, start, webSearchError(fmt.Sprintf("Search error: %v", err)))
		}
	}

	output := WebSearchOutput{
		Query:   input.Query,
		Answer:  resp.Answer,
		Results: make([]WebResultOutput, len(resp.Results)),
		Metadata: &WebSearchMetadata{
			TotalResults: len(resp.Results),
			SearchDepth:  query.SearchDepth,
			ResponseTime: resp.ResponseTime,
		},
	}
	for i, r := range resp.Results {
		output.Results[i] = WebResultOutput{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
			Score:   r.Score,
		}
		if query.IncludeRawContent {
			output.Results[i].RawContent = r.RawContent
		}
	}
	if query.IncludeImages {
		output.Images = resp.Images
	}

	s.metrics.observe(toolWebSearch, outcomeOK, start)
	return nil, output, nil
}

// handleKBSearch handles the kb_search tool invocation.
func (s *Server) handleKBSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input KBSearchInput,
) (*mcp.CallToolResult, KBSearchOutput, error) {
	start := time.Now()

	if s.ports.KnowledgeBase == nil {
		return fail(s, toolKBSearch, outcomeUnavailable, start,
			kbSearchError(knowledgeBaseUnavailable(s.ports.Config)))
	}

	opts := domain.KBSearchOptions{
		TopK:            input.TopK,
		IncludeMetadata: boolOr(input.IncludeMetadata, true),
	}
	if opts.TopK <= 0 {
		opts.TopK = domain.DefaultKBTopK
	}

	resp, err := s.ports.KnowledgeBase.Search(ctx, input.Query, opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrKnowledgeBaseUnavailable):
			return fail(s, toolKBSearch, outcomeUnavailable, start,
				kbSearchError(knowledgeBaseUnavailable(s.ports.Config)))
		case errors.Is(err, domain.ErrInvalidInput):
			return fail(s, toolKBSearch, outcomeError, start, kbSearchError(err.Error()))
		default:
			return fail(s, toolKBSearch, outcomeError, start,
				kbSearchError(fmt.Sprintf("Knowledge base search error: %v", err)))
		}
	}

	output := KBSearchOutput{
		Query:   input.Query,
		Results: make([]KBResultOutput, len(resp.Results)),
		Metadata: &KBSearchMetadata{
			TotalResults:   len(resp.Results),
			EmbeddingModel: resp.EmbeddingModel,
			IndexName:      resp.IndexName,
		},
	}
	for i, r := range resp.Results {
		output.Results[i] = KBResultOutput{
			ID:     r.ID,
			Score:  r.Score,
			Text:   r.Text,
			Source: r.Source,
		}
		if opts.IncludeMetadata {
			output.Results[i].Metadata = r.Metadata
		}
	}

	s.metrics.observe(toolKBSearch, outcomeOK, start)
	return nil, output, nil
}

// handleCreateRequest handles the create_request tool invocation.
func (s *Server) handleCreateRequest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateRequestInput,
) (*mcp.CallToolResult, CreateRequestOutput, error) {
	start := time.Now()

	if s.ports.Request == nil {
		return fail(s, toolCreateRequest, outcomeUnavailable, start, CreateRequestOutput{Error: msgRequestUnavailable})
	}

	result, err := s.ports.Request.Create(ctx, domain.ServiceRequest{
		Subject:             input.Subject,
		RequesterEmail:      input.RequesterEmail,
		CategoryName:        input.CategoryName,
		CCEmailSet:          input.CCEmailSet,
		Tags:                input.Tags,
		ImpactName:          input.ImpactName,
		PriorityName:        input.PriorityName,
		UrgencyName:         input.UrgencyName,
		DepartmentName:      input.DepartmentName,
		LocationName:        input.LocationName,
		SupportLevel:        input.SupportLevel,
		Spam:                input.Spam,
		AssigneeEmail:       input.AssigneeEmail,
		TechnicianGroupName: input.TechnicianGroupName,
		Source:              input.Source,
		StatusName:          input.StatusName,
		Description:         input.Description,
		CustomField:         input.CustomField,
		LinkAssetIDs:        input.LinkAssetIDs,
		LinkCIIDs:           input.LinkCIIDs,
		FileAttachments:     input.FileAttachments,
	})
	if err != nil {
		var apiErr *domain.RequestAPIError
		switch {
		case errors.Is(err, domain.ErrRequestAPIUnavailable):
			return fail(s, toolCreateRequest, outcomeUnavailable, start, CreateRequestOutput{Error: msgRequestUnavailable})
		case errors.Is(err, domain.ErrInvalidInput):
			return fail(s, toolCreateRequest, outcomeError, start, CreateRequestOutput{Error: err.Error()})
		case errors.As(err, &apiErr):
			return fail(s, toolCreateRequest, outcomeError, start,
				CreateRequestOutput{Error: apiErr.Message, Details: apiErr.Details})
		default:
			return fail(s, toolCreateRequest, outcomeError, start,
				CreateRequestOutput{Error: fmt.Sprintf("Unexpected error while creating request: %v", err)})
		}
	}

	output := CreateRequestOutput{
		Success:     true,
		Message:     "Request created successfully",
		RequestData: result.Data,
	}
	if result.Data == nil {
		output.RawResponse = result.Raw
	}

	s.metrics.observe(toolCreateRequest, outcomeOK, start)
	return nil, output, nil
}

// fail records a failed call and returns the output as an error result.
// The output is also rendered as the text content so clients without
// structured content support still see the error.
func fail[Out any](s *Server, tool, outcome string, start time.Time, out Out) (*mcp.CallToolResult, Out, error) {
	s.metrics.observe(tool, outcome, start)
	logger.Warn("%s failed: %s", tool, errorText(out))

	text, err := json.Marshal(errorPayload(out))
	if err != nil {
		text = []byte(errorText(out))
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(text)}},
	}, out, nil
}

func webSearchError(msg string) WebSearchOutput {
	return WebSearchOutput{Results: []WebResultOutput{}, Error: msg}
}

func kbSearchError(msg string) KBSearchOutput {
	return KBSearchOutput{Results: []KBResultOutput{}, Error: msg}
}

// errorPayload is the text body of a failed call. Search failures carry only the error.
func errorPayload(out any) any {
	switch o := out.(type) {
	case WebSearchOutput:
		return map[string]string{"error": o.Error}
	case KBSearchOutput:
		return map[string]string{"error": o.Error}
	default:
		return out
	}
}

func errorText(out any) string {
	switch o := out.(type) {
	case WebSearchOutput:
		return o.Error
	case KBSearchOutput:
		return o.Error
	case CreateRequestOutput:
		return o.Error
	default:
		return fmt.Sprint(out)
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
