package signin

import (
	"context"
	"time"

	"github.com/exactfit/customer-web/internal/state"
)

type GetState struct {
	store  state.Store
	window time.Duration
	now    func() time.Time
}

func NewGetState(store state.Store, window time.Duration) *GetState {
	return &GetState{store: store, window: window, now: time.Now}
}

func (uc *GetState) Execute(ctx context.Context, sessionID string) (*View, error) {
	f, signedIn, err := loadFlow(ctx, uc.store, sessionID)
	if err != nil {
		return nil, err
	}
	return newView(f, signedIn, uc.now(), uc.window), nil
}
