package forms

import (
	"context"

	"github.com/exactfit/customer-web/internal/audit"
	domain "github.com/exactfit/customer-web/internal/domain/forms"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/state"
)

type SubmitEmergency struct {
	gateway domain.Gateway
	store   state.Store
	audit   *audit.Dispatcher
}

func NewSubmitEmergency(
	gateway domain.Gateway,
	store state.Store,
	audit *audit.Dispatcher,
) *SubmitEmergency {
	return &SubmitEmergency{
		gateway: gateway,
		store:   store,
		audit:   audit,
	}
}

func (uc *SubmitEmergency) Execute(ctx context.Context, sessionID, phone string) (*models.EmergencyRequest, error) {
	f := &domain.EmergencyForm{}
	if _, err := state.GetJSON(ctx, uc.store, sessionID, state.KeyEmergencyDraft, f); err != nil {
		return nil, err
	}

	if missing := f.Missing(); len(missing) > 0 {
		return nil, &domain.IncompleteError{Missing: missing}
	}

	saved, err := uc.gateway.UpsertEmergency(ctx, f.Payload())
	if err != nil {
		return nil, err
	}

	if err := uc.store.Delete(ctx, sessionID, state.KeyEmergencyDraft); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: sessionID,
		Phone:     phone,
		Action:    audit.ActionEmergencySubmitted,
		Entity:    "emergency",
		EntityRef: saved.ID,
		Metadata:  map[string]any{"service": f.ServiceTitle, "sub_service": f.SubServiceTitle},
	})

	return saved, nil
}
