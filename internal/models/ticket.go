package models

import "time"

var TicketStatusOptions = []string{"All", "Open", "In Progress", "Resolved", "Closed"}

type Ticket struct {
	ID           string    `json:"id"`
	TicketNumber string    `json:"ticketNumber"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Attachments  []string  `json:"attachments"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewTicket is the body of rise-ticket. Attachments are URLs produced by the
// pre-signed upload step.
type NewTicket struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Attachments []string `json:"attachments"`
}

// Attachment is a file uploaded for a ticket that has not been raised yet.
type Attachment struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
