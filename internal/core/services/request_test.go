package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

func validRequest() domain.ServiceRequest {
	return domain.ServiceRequest{
		Subject:        "  Laptop will not boot  ",
		RequesterEmail: " sam@example.com ",
	}
}

func TestBuildRequestPayload_Defaults(t *testing.T) {
	payload, err := BuildRequestPayload(validRequest())

	require.NoError(t, err)
	assert.Equal(t, "Laptop will not boot", payload.Subject)
	assert.Equal(t, "sam@example.com", payload.RequesterEmail)
	assert.Equal(t, "Low", payload.ImpactName)
	assert.Equal(t, "Low", payload.PriorityName)
	assert.Equal(t, "Low", payload.UrgencyName)
	assert.Equal(t, "Open", payload.StatusName)
	assert.Equal(t, "tier1", payload.SupportLevel)
	assert.False(t, payload.Spam)
	assert.Empty(t, payload.CategoryName, "default category is omitted")
	assert.Empty(t, payload.Source, "default source is omitted")
}

func TestBuildRequestPayload_OptionalFields(t *testing.T) {
	req := validRequest()
	req.CategoryName = "Hardware"
	req.Source = "Email"
	req.SupportLevel = "TIER3"
	req.CCEmailSet = []string{"it@example.com"}
	req.Tags = []string{"laptop"}
	req.DepartmentName = " Finance "
	req.LocationName = " HQ "
	req.AssigneeEmail = " tech@example.com "
	req.TechnicianGroupName = " Desk "
	req.Description = " Black screen after update "
	req.CustomField = map[string]any{"asset": "LT-9"}
	req.LinkAssetIDs = []map[string]any{{"assetModel": "asset_hardware", "assetId": 1}}
	req.LinkCIIDs = []map[string]any{{"ciId": 2, "ciModel": "cmdb"}}
	req.FileAttachments = []map[string]string{{"refFileName": "abc", "realName": "xyz.pdf"}}

	payload, err := BuildRequestPayload(req)

	require.NoError(t, err)
	assert.Equal(t, "Hardware", payload.CategoryName)
	assert.Equal(t, "Email", payload.Source)
	assert.Equal(t, "tier3", payload.SupportLevel)
	assert.Equal(t, []string{"it@example.com"}, payload.CCEmailSet)
	assert.Equal(t, []string{"laptop"}, payload.Tags)
	assert.Equal(t, "Finance", payload.DepartmentName)
	assert.Equal(t, "HQ", payload.LocationName)
	assert.Equal(t, "tech@example.com", payload.AssigneeEmail)
	assert.Equal(t, "Desk", payload.TechnicianGroupName)
	assert.Equal(t, "Black screen after update", payload.Description)
	assert.Equal(t, "LT-9", payload.CustomField["asset"])
	assert.Len(t, payload.LinkAssetIDs, 1)
	assert.Len(t, payload.LinkCIIDs, 1)
	assert.Len(t, payload.FileAttachments, 1)
}

func TestBuildRequestPayload_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.ServiceRequest)
		field   string
		message string
	}{
		{"blank subject", func(r *domain.ServiceRequest) { r.Subject = "   " },
			"subject", "Subject is required and cannot be empty."},
		{"blank requester", func(r *domain.ServiceRequest) { r.RequesterEmail = "" },
			"requester_email", "Requester email is required and cannot be empty."},
		{"bad requester", func(r *domain.ServiceRequest) { r.RequesterEmail = "sam-at-example" },
			"requester_email", "Invalid requester email format."},
		{"bad impact", func(r *domain.ServiceRequest) { r.ImpactName = "Huge" },
			"impact_name", "Invalid impact_name. Must be one of: Low, On User, On department, Or On Business"},
		{"bad priority", func(r *domain.ServiceRequest) { r.PriorityName = "low" },
			"priority_name", "Invalid priority_name. Must be one of: Low, Medium, High, Urgent"},
		{"bad urgency", func(r *domain.ServiceRequest) { r.UrgencyName = "Now" },
			"urgency_name", "Invalid urgency_name. Must be one of: Low, Medium, High, Urgent"},
		{"bad support level", func(r *domain.ServiceRequest) { r.SupportLevel = "Tier5" },
			"support_level", "Invalid support_level. Must be one of: Tier1, Tier2, Tier3, Tier4"},
		{"bad status", func(r *domain.ServiceRequest) { r.StatusName = "Done" },
			"status_name", "Invalid status_name. Must be one of: Open, In Progress, Pending, Resolved, Closed"},
		{"bad cc", func(r *domain.ServiceRequest) { r.CCEmailSet = []string{"ok@example.com", "nope"} },
			"cc_email_set", "Invalid CC email format: nope"},
		{"bad assignee", func(r *domain.ServiceRequest) { r.AssigneeEmail = "tech" },
			"assignee_email", "Invalid assignee email format."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := BuildRequestPayload(req)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("submits payload", func(t *testing.T) {
		client := &mockHelpdesk{result: &domain.RequestResult{Data: map[string]any{"id": 7}}}
		svc := NewRequestService(client)

		result, err := svc.Create(ctx, validRequest())

		require.NoError(t, err)
		assert.NotNil(t, result.Data)
		require.NotNil(t, client.payload)
		assert.Equal(t, "Laptop will not boot", client.payload.Subject)
	})

	t.Run("validation stops submission", func(t *testing.T) {
		client := &mockHelpdesk{}
		svc := NewRequestService(client)

		_, err := svc.Create(ctx, domain.ServiceRequest{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, client.payload)
	})

	t.Run("api error passes through", func(t *testing.T) {
		apiErr := &domain.RequestAPIError{StatusCode: 401, Message: "Unauthorized"}
		svc := NewRequestService(&mockHelpdesk{err: apiErr})

		_, err := svc.Create(ctx, validRequest())

		var got *domain.RequestAPIError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, 401, got.StatusCode)
	})

	t.Run("unconfigured", func(t *testing.T) {
		svc := NewRequestService(nil)
		_, err := svc.Create(ctx, validRequest())
		assert.ErrorIs(t, err, domain.ErrRequestAPIUnavailable)
	})
}
