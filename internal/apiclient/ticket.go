package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/exactfit/customer-web/internal/models"
)

func (c *Client) Tickets(ctx context.Context) ([]models.Ticket, error) {
	var out []models.Ticket
	if err := c.do(ctx, http.MethodGet, "/user/ticket/V1/get-all-ticket", "get_all_ticket", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TicketsByStatus(ctx context.Context, status string) ([]models.Ticket, error) {
	var out []models.Ticket
	if err := c.do(ctx, http.MethodGet, "/user/ticket/V1/ticket/"+url.PathEscape(status), "ticket_by_status", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ticket(ctx context.Context, number string) (*models.Ticket, error) {
	var out models.Ticket
	if err := c.do(ctx, http.MethodGet, "/user/ticket/V1/get-ticket/"+url.PathEscape(number), "get_ticket", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RaiseTicket(ctx context.Context, in models.NewTicket) (*models.Ticket, error) {
	var out models.Ticket
	if err := c.do(ctx, http.MethodPost, "/user/ticket/V1/rise-ticket", "rise_ticket", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
