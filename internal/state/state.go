// Package state is the per-session application store. It replaces the
// browser-local flags (token, userPhone, selectedPlan) and also keeps the
// drafts of the multi-step forms. Writers publish a Change that subscribers
// of the same session receive.
package state

import (
	"context"
	"encoding/json"
	"errors"
)

const (
	KeyToken        = "token"
	KeyUserPhone    = "userPhone"
	KeySelectedPlan = "selectedPlan"

	KeySignIn         = "draft:signin"
	KeyEnquiryDraft   = "draft:enquiry"
	KeyEmergencyDraft = "draft:emergency"
	KeyTicketUploads  = "draft:ticket_uploads"
)

var ErrNotFound = errors.New("state: key not found")

type Change struct {
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}

type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	// Subscribe streams changes to sessionID until ctx is done, then closes
	// the channel.
	Subscribe(ctx context.Context, sessionID string) (<-chan Change, error)
}

// GetJSON decodes the value under key into out. ok is false when the key is
// not set.
func GetJSON(ctx context.Context, s Store, sessionID, key string, out any) (bool, error) {
	raw, err := s.Get(ctx, sessionID, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, err
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, sessionID, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, sessionID, key, string(b))
}

// GetString returns "" for unset keys.
func GetString(ctx context.Context, s Store, sessionID, key string) (string, error) {
	v, err := s.Get(ctx, sessionID, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}
