package signin

import (
	"context"
	"time"

	"github.com/exactfit/customer-web/internal/audit"
	domain "github.com/exactfit/customer-web/internal/domain/signin"
	"github.com/exactfit/customer-web/internal/state"
)

type ResendOTP struct {
	gateway domain.Gateway
	store   state.Store
	audit   *audit.Dispatcher
	window  time.Duration
	now     func() time.Time
}

func NewResendOTP(
	gateway domain.Gateway,
	store state.Store,
	audit *audit.Dispatcher,
	window time.Duration,
) *ResendOTP {
	return &ResendOTP{
		gateway: gateway,
		store:   store,
		audit:   audit,
		window:  window,
		now:     time.Now,
	}
}

func (uc *ResendOTP) Execute(ctx context.Context, sessionID string) (*View, error) {
	f, signedIn, err := loadFlow(ctx, uc.store, sessionID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := f.Resend(now, uc.window); err != nil {
		return nil, err
	}

	if err := uc.gateway.ResendOTP(ctx, f.Phone); err != nil {
		return nil, err
	}

	if err := saveFlow(ctx, uc.store, sessionID, f); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: sessionID,
		Phone:     f.Phone,
		Action:    audit.ActionOTPRequested,
		Entity:    "session",
		Metadata:  map[string]any{"resend": true},
	})

	return newView(f, signedIn, now, uc.window), nil
}
