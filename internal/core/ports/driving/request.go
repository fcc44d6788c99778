package driving

import (
	"context"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// RequestService creates helpdesk requests.
type RequestService interface {
	// Create validates the request, applies defaults and submits it.
	// Validation failures are returned as *domain.ValidationError.
	Create(ctx context.Context, req domain.ServiceRequest) (*domain.RequestResult, error)
}
