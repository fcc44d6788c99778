package driven

import (
	"context"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// HelpdeskClient submits requests to the helpdesk REST API.
type HelpdeskClient interface {
	// CreateRequest posts a new request.
	// Non-success responses and transport failures are returned as *domain.RequestAPIError.
	CreateRequest(ctx context.Context, payload domain.RequestPayload) (*domain.RequestResult, error)
}
