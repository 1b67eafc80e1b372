package forms

import (
	"context"

	domain "github.com/exactfit/customer-web/internal/domain/forms"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/state"
)

type EmergencyView struct {
	Form    domain.EmergencyForm `json:"form"`
	Address string               `json:"address_display"`
	Service string               `json:"service_display"`
	Missing []string             `json:"missing"`
	Ready   bool                 `json:"ready"`
}

func newEmergencyView(f *domain.EmergencyForm) *EmergencyView {
	missing := f.Missing()
	if missing == nil {
		missing = []string{}
	}
	return &EmergencyView{
		Form:    *f,
		Address: f.AddressPanel.Display(domain.PlaceholderAddress),
		Service: f.ServicePanel.Display(domain.PlaceholderService),
		Missing: missing,
		Ready:   len(missing) == 0,
	}
}

type EmergencyDraft struct {
	store state.Store
	dir   domain.Directory
}

func NewEmergencyDraft(store state.Store, dir domain.Directory) *EmergencyDraft {
	return &EmergencyDraft{store: store, dir: dir}
}

func (uc *EmergencyDraft) load(ctx context.Context, sessionID string) (*domain.EmergencyForm, error) {
	f := &domain.EmergencyForm{}
	ok, err := state.GetJSON(ctx, uc.store, sessionID, state.KeyEmergencyDraft, f)
	if err != nil {
		return nil, err
	}
	if !ok {
		f.CountryCode = domain.DefaultCountryCode
	}
	return f, nil
}

func (uc *EmergencyDraft) save(ctx context.Context, sessionID string, f *domain.EmergencyForm) (*EmergencyView, error) {
	if err := state.SetJSON(ctx, uc.store, sessionID, state.KeyEmergencyDraft, f); err != nil {
		return nil, err
	}
	return newEmergencyView(f), nil
}

func (uc *EmergencyDraft) Get(ctx context.Context, sessionID string, signedIn bool) (*EmergencyView, error) {
	f, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if signedIn && f.FullName == "" && f.Email == "" {
		user, err := uc.dir.UserDetails(ctx)
		if err != nil {
			return nil, err
		}
		f.Prefill(*user)
		return uc.save(ctx, sessionID, f)
	}
	return newEmergencyView(f), nil
}

func (uc *EmergencyDraft) Patch(ctx context.Context, sessionID string, p domain.EmergencyPatch) (*EmergencyView, error) {
	f, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	f.Apply(p)
	return uc.save(ctx, sessionID, f)
}

func (uc *EmergencyDraft) ToggleAddressPanel(ctx context.Context, sessionID string) (*EmergencyView, error) {
	f, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	f.AddressPanel.Toggle()
	return uc.save(ctx, sessionID, f)
}

func (uc *EmergencyDraft) ToggleServicePanel(ctx context.Context, sessionID string) (*EmergencyView, error) {
	f, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	f.ServicePanel.Toggle()
	return uc.save(ctx, sessionID, f)
}

func (uc *EmergencyDraft) SelectAddress(ctx context.Context, sessionID, addressID string) (*EmergencyView, error) {
	f, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := uc.dir.UserDetails(ctx)
	if err != nil {
		return nil, err
	}
	addr, ok := domain.FindAddress(user.Addresses, addressID)
	if !ok {
		return nil, httperr.ErrBusiness("address_not_found")
	}

	f.SelectAddress(addr)
	return uc.save(ctx, sessionID, f)
}

// SelectService picks a service, and optionally one of its sub-services,
// from the catalogue.
func (uc *EmergencyDraft) SelectService(ctx context.Context, sessionID, serviceID, subServiceID string) (*EmergencyView, error) {
	f, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	services, err := uc.dir.Services(ctx)
	if err != nil {
		return nil, err
	}
	svc, ok := domain.FindService(services, serviceID)
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	var sub *models.SubService
	if subServiceID != "" {
		s, ok := svc.SubService(subServiceID)
		if !ok {
			return nil, httperr.ErrBusiness("sub_service_not_found")
		}
		sub = &s
	}

	f.SelectService(svc, sub)
	return uc.save(ctx, sessionID, f)
}
