package services

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

// recordHashLength is the number of hex characters of the content digest kept in record IDs.
const recordHashLength = 8

// TicketText renders a ticket as the labeled text block that is embedded.
// The output depends only on the ticket, so equal tickets hash to equal record IDs.
func TicketText(t *domain.Ticket) string {
	lines := []string{
		"Ticket ID: " + t.TicketID,
		"Subject: " + t.Subject,
		"Category: " + t.Category,
		"Priority: " + t.Priority,
		"Status: " + t.Status,
		"Assigned to: " + t.AssignedTo,
		"Requester: " + t.Requester.Name + " (" + t.Requester.Email + ")",
		"Date Reported: " + t.DateReported,
		"User Description: " + t.UserDescription,
	}

	if len(t.UpdateHistory) > 0 {
		lines = append(lines, "Update History:")
		for _, update := range t.UpdateHistory {
			lines = append(lines, "- "+update)
		}
	}

	if resolution := t.ResolutionText(); resolution != "" {
		lines = append(lines, "Resolution: "+resolution)
	}
	if next := t.NextStepsText(); next != "" {
		lines = append(lines, "Next Steps: "+next)
	}

	return strings.Join(lines, "\n")
}

// RecordID returns "<ticket_id>_<first 8 hex chars of md5(TicketText)>".
func RecordID(t *domain.Ticket) string {
	sum := md5.Sum([]byte(TicketText(t))) //nolint:gosec // see import
	return t.TicketID + "_" + hex.EncodeToString(sum[:])[:recordHashLength]
}

// RecordIDPrefix returns the prefix shared by every content version of a ticket.
func RecordIDPrefix(ticketID string) string {
	return ticketID + "_"
}

// TicketMetadata builds the flat metadata stored alongside a ticket's vector.
func TicketMetadata(t *domain.Ticket, info domain.DashboardInfo) map[string]any {
	metadata := map[string]any{
		"ticket_id": t.TicketID,
		"subject":   t.Subject,

		"category":    t.Category,
		"priority":    t.Priority,
		"status":      t.Status,
		"assigned_to": t.AssignedTo,

		"requester_name":  t.Requester.Name,
		"requester_email": t.Requester.Email,

		"date_reported":  t.DateReported,
		"ingestion_date": info.Date,
		"ingestion_time": info.Time,

		"is_resolved":    t.IsResolved(),
		"has_resolution": t.Resolution != nil,
		"has_next_steps": t.NextSteps != nil,

		"description_length": utf8.RuneCountInString(t.UserDescription),
		"update_count":       len(t.UpdateHistory),

		"source":   domain.MetadataSource,
		"location": info.Location,
	}

	if resolution := t.ResolutionText(); resolution != "" {
		metadata["resolution_summary"] = truncateRunes(resolution, domain.ResolutionSummaryLimit)
	}

	return metadata
}

// truncateRunes returns at most n characters of s.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
