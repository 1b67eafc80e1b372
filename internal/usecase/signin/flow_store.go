package signin

import (
	"context"
	"time"

	domain "github.com/exactfit/customer-web/internal/domain/signin"
	"github.com/exactfit/customer-web/internal/state"
)

// ======================================================
// VIEW
// ======================================================

// View is what the sign-in page renders from.
type View struct {
	Stage       domain.Stage    `json:"stage"`
	Phone       string          `json:"phone,omitempty"`
	SecondsLeft int             `json:"seconds_left"`
	CanResend   bool            `json:"can_resend"`
	Boxes       domain.OTPBoxes `json:"boxes"`
	Focus       int             `json:"focus"`
	CanLogin    bool            `json:"can_login"`
	SignedIn    bool            `json:"signed_in"`
	Next        string          `json:"next,omitempty"`
}

// newView renders f. signedIn comes from the stored token, not the stage.
func newView(f *domain.Flow, signedIn bool, now time.Time, window time.Duration) *View {
	return &View{
		Stage:       f.Stage,
		Phone:       f.Phone,
		SecondsLeft: f.SecondsLeft(now, window),
		CanResend:   f.CanResend(now, window),
		Boxes:       f.Boxes,
		CanLogin:    f.Stage == domain.StageOTP && f.Boxes.Complete(),
		SignedIn:    signedIn,
	}
}

// ======================================================
// PERSISTENCE
// ======================================================

// loadFlow reads the session's flow and reports whether a token is stored.
// The stage follows the token: a token set elsewhere (another tab) completes
// the flow, and a completed flow whose token was dropped starts over.
func loadFlow(ctx context.Context, store state.Store, sessionID string) (*domain.Flow, bool, error) {
	f := domain.NewFlow()
	if _, err := state.GetJSON(ctx, store, sessionID, state.KeySignIn, f); err != nil {
		return nil, false, err
	}

	token, err := state.GetString(ctx, store, sessionID, state.KeyToken)
	if err != nil {
		return nil, false, err
	}

	switch {
	case token != "" && f.Stage != domain.StageDone:
		f.Complete()
	case token == "" && f.Stage == domain.StageDone:
		f = domain.NewFlow()
	}
	return f, token != "", nil
}

func saveFlow(ctx context.Context, store state.Store, sessionID string, f *domain.Flow) error {
	return state.SetJSON(ctx, store, sessionID, state.KeySignIn, f)
}
