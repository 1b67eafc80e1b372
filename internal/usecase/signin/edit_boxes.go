package signin

import (
	"context"
	"time"

	domain "github.com/exactfit/customer-web/internal/domain/signin"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/state"
)

// ======================================================
// INPUT
// ======================================================

type BoxOp string

const (
	BoxInput     BoxOp = "input"
	BoxBackspace BoxOp = "backspace"
	BoxPaste     BoxOp = "paste"
)

type EditBoxesInput struct {
	Op    BoxOp
	Index int
	Value string
}

// ======================================================
// USE CASE
// ======================================================

type EditBoxes struct {
	store  state.Store
	window time.Duration
	now    func() time.Time
}

func NewEditBoxes(store state.Store, window time.Duration) *EditBoxes {
	return &EditBoxes{store: store, window: window, now: time.Now}
}

func (uc *EditBoxes) Execute(ctx context.Context, sessionID string, in EditBoxesInput) (*View, error) {
	f, signedIn, err := loadFlow(ctx, uc.store, sessionID)
	if err != nil {
		return nil, err
	}
	if f.Stage != domain.StageOTP {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	var focus int
	switch in.Op {
	case BoxInput:
		focus, err = f.Boxes.Input(in.Index, in.Value)
	case BoxBackspace:
		focus, err = f.Boxes.Backspace(in.Index)
	case BoxPaste:
		focus = f.Boxes.Paste(in.Value)
	default:
		err = httperr.ErrBusiness("invalid_box_op")
	}
	if err != nil {
		return nil, err
	}

	if err := saveFlow(ctx, uc.store, sessionID, f); err != nil {
		return nil, err
	}

	v := newView(f, signedIn, uc.now(), uc.window)
	v.Focus = focus
	return v, nil
}
