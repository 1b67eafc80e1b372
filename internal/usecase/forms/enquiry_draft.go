package forms

import (
	"context"

	domain "github.com/exactfit/customer-web/internal/domain/forms"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/state"
)

// ======================================================
// VIEW
// ======================================================

type EnquiryView struct {
	Form    domain.EnquiryForm `json:"form"`
	Address string             `json:"address_display"`
	Missing []string           `json:"missing"`
	Ready   bool               `json:"ready"`
}

func newEnquiryView(f *domain.EnquiryForm) *EnquiryView {
	missing := f.Missing()
	if missing == nil {
		missing = []string{}
	}
	return &EnquiryView{
		Form:    *f,
		Address: f.AddressPanel.Display(domain.PlaceholderAddress),
		Missing: missing,
		Ready:   len(missing) == 0,
	}
}

// ======================================================
// USE CASE
// ======================================================

// EnquiryDraft keeps the enquiry form of one session in the state store.
type EnquiryDraft struct {
	store state.Store
	dir   domain.Directory
}

func NewEnquiryDraft(store state.Store, dir domain.Directory) *EnquiryDraft {
	return &EnquiryDraft{store: store, dir: dir}
}

func (uc *EnquiryDraft) load(ctx context.Context, sessionID string) (*domain.EnquiryForm, error) {
	f := &domain.EnquiryForm{}
	ok, err := state.GetJSON(ctx, uc.store, sessionID, state.KeyEnquiryDraft, f)
	if err != nil {
		return nil, err
	}
	if !ok {
		f.CountryCode = domain.DefaultCountryCode
	}
	return f, nil
}

func (uc *EnquiryDraft) save(ctx context.Context, sessionID string, f *domain.EnquiryForm) (*EnquiryView, error) {
	if err := state.SetJSON(ctx, uc.store, sessionID, state.KeyEnquiryDraft, f); err != nil {
		return nil, err
	}
	return newEnquiryView(f), nil
}

// Get returns the draft, pre-filling contact details from the profile of a
// signed-in user on first use.
func (uc *EnquiryDraft) Get(ctx context.Context, sessionID string, signedIn bool) (*EnquiryView, error) {
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
	return newEnquiryView(f), nil
}

func (uc *EnquiryDraft) Patch(ctx context.Context, sessionID string, p domain.EnquiryPatch) (*EnquiryView, error) {
	f, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	f.Apply(p)
	return uc.save(ctx, sessionID, f)
}

func (uc *EnquiryDraft) ToggleAddressPanel(ctx context.Context, sessionID string) (*EnquiryView, error) {
	f, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	f.AddressPanel.Toggle()
	return uc.save(ctx, sessionID, f)
}

// SelectAddress picks one of the signed-in user's saved addresses.
func (uc *EnquiryDraft) SelectAddress(ctx context.Context, sessionID, addressID string) (*EnquiryView, error) {
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
