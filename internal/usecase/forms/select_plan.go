package forms

import (
	"context"
	"net/http"
	"strings"

	"github.com/exactfit/customer-web/internal/apiclient"
	"github.com/exactfit/customer-web/internal/audit"
	domain "github.com/exactfit/customer-web/internal/domain/forms"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/state"
)

type SelectPlan struct {
	dir   domain.Directory
	store state.Store
	audit *audit.Dispatcher
}

func NewSelectPlan(
	dir domain.Directory,
	store state.Store,
	audit *audit.Dispatcher,
) *SelectPlan {
	return &SelectPlan{
		dir:   dir,
		store: store,
		audit: audit,
	}
}

// ResolvePlan finds slug among the bundled plans and falls back to the
// backend for the others. A plan the backend does not know, or returns
// without a name, is package_not_found.
func ResolvePlan(ctx context.Context, dir domain.Directory, slug string) (*models.PackagePlan, error) {
	if p, ok := models.FindPackagePlan(slug); ok {
		return &p, nil
	}

	plan, err := dir.PackageBySlug(ctx, slug)
	if err != nil {
		if apiErr, ok := apiclient.AsError(err); ok && apiErr.Status == http.StatusNotFound {
			return nil, httperr.ErrBusiness("package_not_found")
		}
		return nil, err
	}
	if plan == nil || strings.TrimSpace(plan.Name) == "" {
		return nil, httperr.ErrBusiness("package_not_found")
	}
	return plan, nil
}

// Execute remembers the chosen plan and starts the enquiry draft from it.
func (uc *SelectPlan) Execute(ctx context.Context, sessionID, phone, slug string) (*EnquiryView, error) {
	plan, err := ResolvePlan(ctx, uc.dir, slug)
	if err != nil {
		return nil, err
	}

	f := &domain.EnquiryForm{CountryCode: domain.DefaultCountryCode}
	if _, err := state.GetJSON(ctx, uc.store, sessionID, state.KeyEnquiryDraft, f); err != nil {
		return nil, err
	}
	f.UsePlan(*plan)

	if err := uc.store.Set(ctx, sessionID, state.KeySelectedPlan, plan.Slug); err != nil {
		return nil, err
	}
	if err := state.SetJSON(ctx, uc.store, sessionID, state.KeyEnquiryDraft, f); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: sessionID,
		Phone:     phone,
		Action:    audit.ActionPlanSelected,
		Entity:    "package",
		EntityRef: plan.Slug,
	})

	return newEnquiryView(f), nil
}
