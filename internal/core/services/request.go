package services

import (
	"context"
	"slices"
	"strings"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driving"
	"github.com/custodia-labs/sops-ai/internal/logger"
)

// Ensure RequestService implements the interface.
var _ driving.RequestService = (*RequestService)(nil)

// RequestService validates and submits helpdesk requests.
type RequestService struct {
	client driven.HelpdeskClient
}

// NewRequestService creates a new request service.
func NewRequestService(client driven.HelpdeskClient) *RequestService {
	return &RequestService{client: client}
}

// Create validates req, builds the API payload and submits it.
func (s *RequestService) Create(ctx context.Context, req domain.ServiceRequest) (*domain.RequestResult, error) {
	if s.client == nil {
		return nil, domain.ErrRequestAPIUnavailable
	}

	payload, err := BuildRequestPayload(req)
	if err != nil {
		return nil, err
	}

	logger.Debug("Creating request %q for %s", payload.Subject, payload.RequesterEmail)
	return s.client.CreateRequest(ctx, *payload)
}

// BuildRequestPayload applies defaults, validates every field and returns the API body.
// Checks run in a fixed order and the first failure is returned.
//
//nolint:gocyclo // Flat sequence of field checks
func BuildRequestPayload(req domain.ServiceRequest) (*domain.RequestPayload, error) {
	applyRequestDefaults(&req)

	if strings.TrimSpace(req.Subject) == "" {
		return nil, domain.NewValidationError("subject", "Subject is required and cannot be empty.")
	}
	if strings.TrimSpace(req.RequesterEmail) == "" {
		return nil, domain.NewValidationError("requester_email", "Requester email is required and cannot be empty.")
	}
	if !looksLikeEmail(req.RequesterEmail) {
		return nil, domain.NewValidationError("requester_email", "Invalid requester email format.")
	}

	if err := checkOneOf("impact_name", req.ImpactName, domain.ValidImpactNames); err != nil {
		return nil, err
	}
	if err := checkOneOf("priority_name", req.PriorityName, domain.ValidPriorityNames); err != nil {
		return nil, err
	}
	if err := checkOneOf("urgency_name", req.UrgencyName, domain.ValidUrgencyNames); err != nil {
		return nil, err
	}

	supportLevel := strings.ToLower(req.SupportLevel)
	if !slices.Contains(domain.ValidSupportLevels, supportLevel) {
		return nil, domain.NewValidationError("support_level",
			"Invalid support_level. Must be one of: Tier1, Tier2, Tier3, Tier4")
	}

	if err := checkOneOf("status_name", req.StatusName, domain.ValidStatusNames); err != nil {
		return nil, err
	}

	payload := &domain.RequestPayload{
		Subject:        strings.TrimSpace(req.Subject),
		RequesterEmail: strings.TrimSpace(req.RequesterEmail),
		ImpactName:     req.ImpactName,
		PriorityName:   req.PriorityName,
		UrgencyName:    req.UrgencyName,
		StatusName:     req.StatusName,
		Spam:           req.Spam,
		SupportLevel:   supportLevel,
	}

	if req.CategoryName != domain.DefaultCategoryName {
		payload.CategoryName = req.CategoryName
	}
	if req.Source != domain.DefaultSource {
		payload.Source = req.Source
	}

	if len(req.CCEmailSet) > 0 {
		for _, email := range req.CCEmailSet {
			if !looksLikeEmail(email) {
				return nil, domain.NewValidationError("cc_email_set", "Invalid CC email format: "+email)
			}
		}
		payload.CCEmailSet = req.CCEmailSet
	}

	payload.Tags = req.Tags
	payload.DepartmentName = strings.TrimSpace(req.DepartmentName)
	payload.LocationName = strings.TrimSpace(req.LocationName)

	if req.AssigneeEmail != "" {
		if !looksLikeEmail(req.AssigneeEmail) {
			return nil, domain.NewValidationError("assignee_email", "Invalid assignee email format.")
		}
		payload.AssigneeEmail = strings.TrimSpace(req.AssigneeEmail)
	}

	payload.TechnicianGroupName = strings.TrimSpace(req.TechnicianGroupName)
	payload.Description = strings.TrimSpace(req.Description)
	payload.CustomField = req.CustomField
	payload.LinkAssetIDs = req.LinkAssetIDs
	payload.LinkCIIDs = req.LinkCIIDs
	payload.FileAttachments = req.FileAttachments

	return payload, nil
}

func applyRequestDefaults(req *domain.ServiceRequest) {
	defaults := []struct {
		field *string
		value string
	}{
		{&req.CategoryName, domain.DefaultCategoryName},
		{&req.ImpactName, domain.DefaultImpactName},
		{&req.PriorityName, domain.DefaultPriorityName},
		{&req.UrgencyName, domain.DefaultUrgencyName},
		{&req.SupportLevel, domain.DefaultSupportLevel},
		{&req.Source, domain.DefaultSource},
		{&req.StatusName, domain.DefaultStatusName},
	}
	for _, d := range defaults {
		if *d.field == "" {
			*d.field = d.value
		}
	}
}

func checkOneOf(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return domain.NewValidationError(field,
		"Invalid "+field+". Must be one of: "+strings.Join(allowed, ", "))
}

// looksLikeEmail is the helpdesk's own minimal check: an "@" and a ".".
func looksLikeEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}
