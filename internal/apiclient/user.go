package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/exactfit/customer-web/internal/models"
)

func (c *Client) UserDetails(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/user/user-auth/V1/user-details", "user_details", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPatch, "/user/user-auth/V1/update-profile", "update_profile", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertAddress creates the address when ID is empty and updates it otherwise.
func (c *Client) UpsertAddress(ctx context.Context, addr models.Address) (*models.Address, error) {
	var saved models.Address
	if err := c.do(ctx, http.MethodPost, "/user/user-auth/V1/upsert-address", "upsert_address", addr, &saved); err != nil {
		return nil, err
	}
	if saved.ID == "" {
		saved = addr
	}
	return &saved, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/user-auth/V1/delete-address/"+url.PathEscape(id), "delete_address", nil, nil)
}
