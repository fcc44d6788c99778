// Package tavily provides a web search adapter using the Tavily search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.WebSearchProvider = (*Provider)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.tavily.com"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the Tavily provider.
type Config struct {
	// APIKey is the Tavily API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.tavily.com).
	BaseURL string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Provider searches the web through Tavily.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewProvider creates a new Tavily provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("tavily: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Provider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// searchRequest is the request body for the search API.
type searchRequest struct {
	Query             string   `json:"query"`
	SearchDepth       string   `json:"search_depth,omitempty"`
	MaxResults        int      `json:"max_results,omitempty"`
	IncludeAnswer     bool     `json:"include_answer"`
	IncludeRawContent bool     `json:"include_raw_content"`
	IncludeImages     bool     `json:"include_images"`
	IncludeDomains    []string `json:"include_domains,omitempty"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty"`
}

// searchResponse is the response body from the search API.
type searchResponse struct {
	Query        string         `json:"query"`
	Answer       string         `json:"answer"`
	Results      []searchResult `json:"results"`
	Images       []any          `json:"images"`
	ResponseTime float64        `json:"response_time"`
}

type searchResult struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
	RawContent *string `json:"raw_content"`
}

// errorResponse is the error body returned by the API.
type errorResponse struct {
	Detail struct {
		Error string `json:"error"`
	} `json:"detail"`
}

// Search runs a web search.
func (p *Provider) Search(ctx context.Context, query domain.WebSearchQuery) (*domain.WebSearchResponse, error) {
	reqBody := searchRequest{
		Query:             query.Query,
		SearchDepth:       query.SearchDepth,
		MaxResults:        query.MaxResults,
		IncludeAnswer:     query.IncludeAnswer,
		IncludeRawContent: query.IncludeRawContent,
		IncludeImages:     query.IncludeImages,
		IncludeDomains:    query.IncludeDomains,
		ExcludeDomains:    query.ExcludeDomains,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("tavily: marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tavily: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tavily: reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Detail.Error != "" {
			return nil, fmt.Errorf("tavily: %s (status %d)", errResp.Detail.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("tavily: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(respBody, &searchResp); err != nil {
		return nil, fmt.Errorf("tavily: decoding response: %w", err)
	}

	out := &domain.WebSearchResponse{
		Answer:       searchResp.Answer,
		Results:      make([]domain.WebResult, 0, len(searchResp.Results)),
		Images:       searchResp.Images,
		ResponseTime: searchResp.ResponseTime,
	}
	for _, r := range searchResp.Results {
		out.Results = append(out.Results, domain.WebResult{
			Title:      r.Title,
			URL:        r.URL,
			Content:    r.Content,
			Score:      r.Score,
			RawContent: r.RawContent,
		})
	}
	return out, nil
}
