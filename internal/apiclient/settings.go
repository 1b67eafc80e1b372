package apiclient

import (
	"context"
	"net/http"

	"github.com/exactfit/customer-web/internal/models"
)

func (c *Client) Settings(ctx context.Context) (*models.Settings, error) {
	var out models.Settings
	if err := c.do(ctx, http.MethodGet, "/admin/settings/V1/get-settings", "get_settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateContactUs(ctx context.Context, in models.ContactRequest) error {
	return c.do(ctx, http.MethodPost, "/user/contactus/V1/create-contactus", "create_contactus", in, nil)
}
