package forms

import (
	"context"

	"github.com/exactfit/customer-web/internal/models"
)

// Gateway is the backend side of the enquiry and emergency forms.
type Gateway interface {
	UpsertEnquiry(ctx context.Context, e models.Enquiry) (*models.Enquiry, error)
	UpsertEmergency(ctx context.Context, e models.EmergencyRequest) (*models.EmergencyRequest, error)
}

// Directory supplies the options the form panels pick from.
type Directory interface {
	UserDetails(ctx context.Context) (*models.User, error)
	Services(ctx context.Context) ([]models.Service, error)
	PackageBySlug(ctx context.Context, slug string) (*models.PackagePlan, error)
}
