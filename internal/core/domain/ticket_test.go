package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicket_IsResolved(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Resolved", true},
		{"resolved", false},
		{"RESOLVED", false},
		{"Resolved ", false},
		{"Open", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			ticket := Ticket{Status: tt.status}
			assert.Equal(t, tt.want, ticket.IsResolved())
		})
	}
}

func TestTicket_UnmarshalOptionalFields(t *testing.T) {
	t.Run("null and absent are nil", func(t *testing.T) {
		var ticket Ticket
		err := json.Unmarshal([]byte(`{"ticketId":"T-1","resolution":null}`), &ticket)
		require.NoError(t, err)
		assert.Nil(t, ticket.Resolution)
		assert.Nil(t, ticket.NextSteps)
		assert.Equal(t, "", ticket.ResolutionText())
	})

	t.Run("empty string is present", func(t *testing.T) {
		var ticket Ticket
		err := json.Unmarshal([]byte(`{"ticketId":"T-1","resolution":"","nextSteps":"call back"}`), &ticket)
		require.NoError(t, err)
		require.NotNil(t, ticket.Resolution)
		assert.Equal(t, "", ticket.ResolutionText())
		assert.Equal(t, "call back", ticket.NextStepsText())
	})
}

func TestTicket_Validate(t *testing.T) {
	assert.NoError(t, (&Ticket{TicketID: "T-1"}).Validate())

	err := (&Ticket{TicketID: "  "}).Validate()
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestTicketExport_Validate(t *testing.T) {
	t.Run("missing dashboard info", func(t *testing.T) {
		export := TicketExport{Tickets: []Ticket{}}
		assert.ErrorIs(t, export.Validate(), ErrInvalidInput)
	})

	t.Run("missing tickets", func(t *testing.T) {
		export := TicketExport{DashboardInfo: &DashboardInfo{}}
		assert.ErrorIs(t, export.Validate(), ErrInvalidInput)
	})

	t.Run("empty tickets is valid", func(t *testing.T) {
		export := TicketExport{DashboardInfo: &DashboardInfo{}, Tickets: []Ticket{}}
		assert.NoError(t, export.Validate())
	})
}
