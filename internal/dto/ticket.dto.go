package dto

import (
	"github.com/exactfit/customer-web/internal/domain/listing"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/timezone"
)

type TicketDTO struct {
	ID           string   `json:"id"`
	TicketNumber string   `json:"ticket_number"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	Attachments  []string `json:"attachments"`
	CreatedOn    string   `json:"created_on"`
	Expanded     bool     `json:"expanded"`
}

func ToTicketDTO(t models.Ticket) TicketDTO {
	attachments := t.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return TicketDTO{
		ID:           t.ID,
		TicketNumber: t.TicketNumber,
		Title:        t.Title,
		Description:  t.Description,
		Status:       listing.NormalizeStatus(t.Status),
		Attachments:  attachments,
		CreatedOn:    timezone.FormatDate(t.CreatedAt),
	}
}

func ToTicketDTOs(tickets []models.Ticket) []TicketDTO {
	out := make([]TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicketDTO(t))
	}
	return out
}
