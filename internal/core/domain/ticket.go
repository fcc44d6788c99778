package domain

import "strings"

// StatusResolved is the lifecycle label that marks a ticket as resolved.
// The comparison is exact and case-sensitive.
const StatusResolved = "Resolved"

// Requester identifies the person who reported a ticket.
type Requester struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Ticket is a helpdesk ticket exported from the service desk dashboard.
// Tickets are read-only once loaded.
type Ticket struct {
	TicketID        string    `json:"ticketId"`
	Subject         string    `json:"subject"`
	Category        string    `json:"category"`
	Priority        string    `json:"priority"`
	Status          string    `json:"status"`
	AssignedTo      string    `json:"assignedTo"`
	Requester       Requester `json:"requester"`
	DateReported    string    `json:"dateReported"`
	UserDescription string    `json:"userDescription"`
	UpdateHistory   []string  `json:"updateHistory"`

	// Resolution is nil when the export omits it or sets it to null.
	Resolution *string `json:"resolution"`

	// NextSteps is nil when the export omits it or sets it to null.
	NextSteps *string `json:"nextSteps"`
}

// IsResolved returns true if the ticket status is exactly "Resolved".
func (t *Ticket) IsResolved() bool {
	return t.Status == StatusResolved
}

// ResolutionText returns the resolution or "" when absent.
func (t *Ticket) ResolutionText() string {
	if t.Resolution == nil {
		return ""
	}
	return *t.Resolution
}

// NextStepsText returns the next steps or "" when absent.
func (t *Ticket) NextStepsText() string {
	if t.NextSteps == nil {
		return ""
	}
	return *t.NextSteps
}

// Validate checks the fields required to address a ticket in the index.
func (t *Ticket) Validate() error {
	if strings.TrimSpace(t.TicketID) == "" {
		return NewValidationError("ticketId", "ticket has no ticketId")
	}
	return nil
}

// DashboardInfo is the export context shared by every ticket in one file.
type DashboardInfo struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// TicketExport is the document produced by the service desk dashboard export.
type TicketExport struct {
	DashboardInfo *DashboardInfo `json:"dashboardInfo"`
	Tickets       []Ticket       `json:"tickets"`
}

// Validate checks the export has the structure ingestion relies on.
func (e *TicketExport) Validate() error {
	if e.DashboardInfo == nil {
		return NewValidationError("dashboardInfo", "export has no dashboardInfo")
	}
	if e.Tickets == nil {
		return NewValidationError("tickets", "export has no tickets array")
	}
	return nil
}
