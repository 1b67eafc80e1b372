package signin

import (
	"context"
	"time"

	"github.com/exactfit/customer-web/internal/audit"
	domain "github.com/exactfit/customer-web/internal/domain/signin"
	"github.com/exactfit/customer-web/internal/state"
)

type RequestOTP struct {
	gateway domain.Gateway
	store   state.Store
	audit   *audit.Dispatcher
	window  time.Duration
	now     func() time.Time
}

func NewRequestOTP(
	gateway domain.Gateway,
	store state.Store,
	audit *audit.Dispatcher,
	window time.Duration,
) *RequestOTP {
	return &RequestOTP{
		gateway: gateway,
		store:   store,
		audit:   audit,
		window:  window,
		now:     time.Now,
	}
}

// Execute sends a code to phone. The flow only reaches the OTP step once the
// backend has accepted the request.
func (uc *RequestOTP) Execute(ctx context.Context, sessionID, phone string) (*View, error) {
	f, signedIn, err := loadFlow(ctx, uc.store, sessionID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := f.StartOTP(phone, now); err != nil {
		return nil, err
	}

	if err := uc.gateway.SendOTP(ctx, f.Phone); err != nil {
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
	})

	return newView(f, signedIn, now, uc.window), nil
}
