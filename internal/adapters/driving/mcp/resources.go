package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for SOPS-AI resources.
	uriScheme = "sops-ai://"

	// runsResourceLimit caps the run history resource.
	runsResourceLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Which tools are configured and which settings are missing",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index/stats",
		Name:        "index-stats",
		Description: "Vector count and fullness of the knowledge base index",
		MIMEType:    "application/json",
	}, s.handleIndexStatsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "ingest-runs",
		Description: "Recent ticket ingestion runs, newest first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)
}

// featureInfo is the status resource entry for one tool.
type featureInfo struct {
	Name    string   `json:"name"`
	Enabled bool     `json:"enabled"`
	Missing []string `json:"missing,omitempty"`
}

// handleStatusResource reports the configuration of each tool.
func (s *Server) handleStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	infos := []featureInfo{}
	if s.ports.Config != nil {
		for _, f := range s.ports.Config.Features() {
			infos = append(infos, featureInfo{Name: f.Name, Enabled: f.Enabled(), Missing: f.Missing})
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleIndexStatsResource returns the knowledge base index stats.
func (s *Server) handleIndexStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingestion == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.Ingestion.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("describing index: %w", err)
	}
	return jsonResource(req.Params.URI, stats)
}

// runInfo is the run history resource entry.
type runInfo struct {
	ID               string    `json:"id"`
	SourcePath       string    `json:"source_path"`
	IndexName        string    `json:"index_name"`
	DryRun           bool      `json:"dry_run"`
	TicketsAttempted int       `json:"tickets_attempted"`
	TicketsProcessed int       `json:"tickets_processed"`
	RecordsUpserted  int       `json:"records_upserted"`
	FailedBatches    int       `json:"failed_batches"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
}

// handleRunsResource returns recent ingestion runs.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingestion == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	runs, err := s.ports.Ingestion.History(ctx, runsResourceLimit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	infos := make([]runInfo, len(runs))
	for i, r := range runs {
		infos[i] = runInfo{
			ID:               r.ID,
			SourcePath:       r.SourcePath,
			IndexName:        r.IndexName,
			DryRun:           r.DryRun,
			TicketsAttempted: r.TicketsAttempted,
			TicketsProcessed: r.TicketsProcessed,
			RecordsUpserted:  r.RecordsUpserted,
			FailedBatches:    r.FailedBatches,
			StartedAt:        r.StartedAt,
			FinishedAt:       r.FinishedAt,
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
