package apiclient

import (
	"context"
	"net/http"

	"github.com/exactfit/customer-web/internal/models"
)

func (c *Client) UpsertEnquiry(ctx context.Context, in models.Enquiry) (*models.Enquiry, error) {
	var out models.Enquiry
	if err := c.do(ctx, http.MethodPost, "/user/booking/V1/upsert-enquiry", "upsert_enquiry", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpsertEmergency(ctx context.Context, in models.EmergencyRequest) (*models.EmergencyRequest, error) {
	var out models.EmergencyRequest
	if err := c.do(ctx, http.MethodPost, "/user/booking/V1/upsert-emergency", "upsert_emergency", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Enquiries(ctx context.Context) ([]models.Enquiry, error) {
	var out []models.Enquiry
	if err := c.do(ctx, http.MethodGet, "/user/booking/V1/get-all-enquiry", "get_all_enquiry", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Emergencies(ctx context.Context) ([]models.EmergencyRequest, error) {
	var out []models.EmergencyRequest
	if err := c.do(ctx, http.MethodGet, "/user/booking/V1/get-all-emergency", "get_all_emergency", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
