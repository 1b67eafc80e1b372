package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/models"
)

func ticketStatus(t models.Ticket) string { return t.Status }

func TestFilterByStatus(t *testing.T) {
	tickets := []models.Ticket{
		{ID: "1", Status: "Open"},
		{ID: "2", Status: "Closed"},
		{ID: "3", Status: "Open"},
	}

	open := FilterByStatus(tickets, "Open", ticketStatus)
	require.Len(t, open, 2)
	assert.Equal(t, "1", open[0].ID)
	assert.Equal(t, "3", open[1].ID)

	assert.Empty(t, FilterByStatus(tickets, "Resolved", ticketStatus))
	assert.Equal(t, tickets, FilterByStatus(tickets, "All", ticketStatus))
	assert.Equal(t, tickets, FilterByStatus(tickets, "", ticketStatus))
}

func TestValidStatus(t *testing.T) {
	s, err := ValidStatus("in progress", models.TicketStatusOptions)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", s)

	s, err = ValidStatus("", models.TicketStatusOptions)
	require.NoError(t, err)
	assert.Equal(t, StatusAll, s)

	_, err = ValidStatus("Archived", models.TicketStatusOptions)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestAccordionSingleOpen(t *testing.T) {
	var a Accordion
	a.Toggle("s1")
	assert.True(t, a.IsExpanded("s1"))

	a.Toggle("s2")
	assert.False(t, a.IsExpanded("s1"))
	assert.True(t, a.IsExpanded("s2"))

	a.Toggle("s2")
	assert.False(t, a.IsExpanded("s2"))
	assert.False(t, a.IsExpanded(""))
}

func TestExpandSetIndependent(t *testing.T) {
	s := NewExpandSet("t1", "")
	s.Toggle("t2")

	assert.True(t, s.IsExpanded("t1"))
	assert.True(t, s.IsExpanded("t2"))

	s.Toggle("t1")
	assert.False(t, s.IsExpanded("t1"))
	assert.True(t, s.IsExpanded("t2"))
}

func TestPendingUploadsRemoveKeepsOrder(t *testing.T) {
	var p PendingUploads
	for _, name := range []string{"a.png", "b.png", "c.pdf", "d.png"} {
		require.NoError(t, p.Add(models.Attachment{Name: name, URL: "https://cdn.test/" + name}))
	}

	require.NoError(t, p.Remove(1))
	require.Len(t, p, 3)
	assert.Equal(t, "a.png", p[0].Name)
	assert.Equal(t, "c.pdf", p[1].Name)
	assert.Equal(t, "d.png", p[2].Name)

	assert.True(t, httperr.IsBusiness(p.Remove(3), "attachment_not_found"))
	assert.True(t, httperr.IsBusiness(p.Remove(-1), "attachment_not_found"))
	assert.Equal(t, []string{"https://cdn.test/a.png", "https://cdn.test/c.pdf", "https://cdn.test/d.png"}, p.URLs())
}

func TestPendingUploadsLimit(t *testing.T) {
	var p PendingUploads
	for i := 0; i < MaxPendingUploads; i++ {
		require.NoError(t, p.Add(models.Attachment{Name: "f"}))
	}
	assert.True(t, httperr.IsBusiness(p.Add(models.Attachment{}), "too_many_attachments"))
}

func TestNormalizeSubscriptionStatus(t *testing.T) {
	cases := map[string]string{
		"active":    "Active",
		" ACTIVE ":  "Active",
		"inactive":  "Pending",
		"awaiting":  "Pending",
		"Pending":   "Pending",
		"expired":   "Completed",
		"complete":  "Completed",
		"ended":     "Completed",
		"on_hold":   "On Hold",
		"suspended": "Suspended",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeSubscriptionStatus(in), in)
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "In Progress", NormalizeStatus("in progress"))
	assert.Equal(t, "In Progress", NormalizeStatus("IN_PROGRESS"))
	assert.Equal(t, "", NormalizeStatus("  "))
}
