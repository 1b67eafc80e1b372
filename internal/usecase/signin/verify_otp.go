package signin

import (
	"context"
	"time"

	"github.com/exactfit/customer-web/internal/audit"
	domain "github.com/exactfit/customer-web/internal/domain/signin"
	"github.com/exactfit/customer-web/internal/state"
)

type VerifyOTP struct {
	gateway domain.Gateway
	store   state.Store
	audit   *audit.Dispatcher
	window  time.Duration
	now     func() time.Time
}

func NewVerifyOTP(
	gateway domain.Gateway,
	store state.Store,
	audit *audit.Dispatcher,
	window time.Duration,
) *VerifyOTP {
	return &VerifyOTP{
		gateway: gateway,
		store:   store,
		audit:   audit,
		window:  window,
		now:     time.Now,
	}
}

// Execute verifies code (or the boxes when code is empty). On success the
// token and phone are stored for the session and View.Next says where to go.
// On failure nothing is stored and the flow stays on the OTP step.
func (uc *VerifyOTP) Execute(ctx context.Context, sessionID, code string) (*View, error) {
	f, _, err := loadFlow(ctx, uc.store, sessionID)
	if err != nil {
		return nil, err
	}

	code, err = f.CheckCode(code)
	if err != nil {
		return nil, err
	}

	grant, err := uc.gateway.VerifyOTP(ctx, f.Phone, code)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Set(ctx, sessionID, state.KeyToken, grant.Token); err != nil {
		return nil, err
	}
	if err := uc.store.Set(ctx, sessionID, state.KeyUserPhone, f.Phone); err != nil {
		return nil, err
	}

	f.Complete()
	if err := saveFlow(ctx, uc.store, sessionID, f); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: sessionID,
		Phone:     f.Phone,
		Action:    audit.ActionSignedIn,
		Entity:    "session",
		Metadata:  map[string]any{"profile_complete": grant.IsProfileUpdate},
	})

	v := newView(f, true, uc.now(), uc.window)
	v.Phone = f.Phone
	v.Next = domain.NextPath(grant.IsProfileUpdate)
	return v, nil
}
