package forms

import (
	"context"

	"github.com/exactfit/customer-web/internal/audit"
	domain "github.com/exactfit/customer-web/internal/domain/forms"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/state"
)

type SubmitEnquiry struct {
	gateway domain.Gateway
	store   state.Store
	audit   *audit.Dispatcher
}

func NewSubmitEnquiry(
	gateway domain.Gateway,
	store state.Store,
	audit *audit.Dispatcher,
) *SubmitEnquiry {
	return &SubmitEnquiry{
		gateway: gateway,
		store:   store,
		audit:   audit,
	}
}

// Execute sends the session's enquiry draft with a single upsert-enquiry
// call. The draft is only cleared after the backend accepted it; a failure
// leaves it in place for another attempt.
func (uc *SubmitEnquiry) Execute(ctx context.Context, sessionID, phone string) (*models.Enquiry, error) {
	f := &domain.EnquiryForm{}
	if _, err := state.GetJSON(ctx, uc.store, sessionID, state.KeyEnquiryDraft, f); err != nil {
		return nil, err
	}

	if missing := f.Missing(); len(missing) > 0 {
		return nil, &domain.IncompleteError{Missing: missing}
	}

	saved, err := uc.gateway.UpsertEnquiry(ctx, f.Payload())
	if err != nil {
		return nil, err
	}

	if err := uc.store.Delete(ctx, sessionID, state.KeyEnquiryDraft, state.KeySelectedPlan); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: sessionID,
		Phone:     phone,
		Action:    audit.ActionEnquirySubmitted,
		Entity:    "enquiry",
		EntityRef: saved.ID,
		Metadata:  map[string]any{"scope_of_work": f.ScopeOfWork, "plan": f.PlanSlug},
	})

	return saved, nil
}
