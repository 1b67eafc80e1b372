package signin

import (
	"context"

	"github.com/exactfit/customer-web/internal/state"
)

type Logout struct {
	store state.Store
}

func NewLogout(store state.Store) *Logout {
	return &Logout{store: store}
}

// Execute forgets the token, phone, selected plan and all form drafts.
func (uc *Logout) Execute(ctx context.Context, sessionID string) error {
	return uc.store.Delete(ctx, sessionID,
		state.KeyToken,
		state.KeyUserPhone,
		state.KeySelectedPlan,
		state.KeySignIn,
		state.KeyEnquiryDraft,
		state.KeyEmergencyDraft,
		state.KeyTicketUploads,
	)
}
