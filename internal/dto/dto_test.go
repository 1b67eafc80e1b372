package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exactfit/customer-web/internal/models"
)

func TestToSubscriptionDTOs(t *testing.T) {
	out := ToSubscriptionDTOs([]models.Subscription{{
		ID:        "s1",
		PlanName:  "Premium",
		Status:    "expired",
		StartDate: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
		Schedule:  []models.ScheduleEntry{{Date: "2025-02-01", Service: "AC service", Status: "done"}},
	}})

	require.Len(t, out, 1)
	assert.Equal(t, "Completed", out[0].Status)
	assert.Equal(t, "10 Jan 2025", out[0].StartDate)
	assert.Equal(t, "-", out[0].EndDate)
	assert.Equal(t, []string{}, out[0].Included)
	assert.Equal(t, "Done", out[0].Schedule[0].Status)
}

func TestToTicketDTO(t *testing.T) {
	d := ToTicketDTO(models.Ticket{ID: "t1", TicketNumber: "TK-0001", Status: "in progress"})

	assert.Equal(t, "TK-0001", d.TicketNumber)
	assert.Equal(t, "In Progress", d.Status)
	assert.Equal(t, []string{}, d.Attachments)
}
