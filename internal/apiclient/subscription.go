package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/exactfit/customer-web/internal/models"
)

func (c *Client) Subscriptions(ctx context.Context) ([]models.Subscription, error) {
	var out []models.Subscription
	if err := c.do(ctx, http.MethodGet, "/user/user-subscription/V1/get-subscription", "get_subscription", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PackageBySlug fetches the one plan variant whose details are not bundled
// with the site.
func (c *Client) PackageBySlug(ctx context.Context, slug string) (*models.PackagePlan, error) {
	var out models.PackagePlan
	if err := c.do(ctx, http.MethodGet, "/user/user-subscription/V1/get-package/"+url.PathEscape(slug), "get_package", nil, &out); err != nil {
		return nil, err
	}
	if out.Slug == "" {
		out.Slug = slug
	}
	return &out, nil
}
