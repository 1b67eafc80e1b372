package apiclient

import (
	"context"
	"net/http"

	"github.com/exactfit/customer-web/internal/models"
)

func (c *Client) Services(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := c.do(ctx, http.MethodGet, "/user/dashboard/V1/get-all-services-sub-services", "get_all_services", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
