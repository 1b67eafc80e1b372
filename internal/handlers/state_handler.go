package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/middleware"
	"github.com/exactfit/customer-web/internal/state"
)

const keepAliveEvery = 25 * time.Second

// StateHandler streams a session's state changes so every open tab follows
// sign-in, sign-out and draft edits.
type StateHandler struct {
	store  state.Store
	logger *slog.Logger
}

func NewStateHandler(store state.Store, logger *slog.Logger) *StateHandler {
	return &StateHandler{store: store, logger: logger}
}

// event is what goes over the wire. The token never does: its key is
// reported as signed_in instead.
type event struct {
	Key      string `json:"key"`
	Value    string `json:"value,omitempty"`
	Deleted  bool   `json:"deleted,omitempty"`
	SignedIn *bool  `json:"signed_in,omitempty"`
}

func toEvent(ch state.Change) event {
	if ch.Key == state.KeyToken {
		signedIn := !ch.Deleted && ch.Value != ""
		return event{Key: "session", SignedIn: &signedIn}
	}
	return event{Key: ch.Key, Value: ch.Value, Deleted: ch.Deleted}
}

func (h *StateHandler) Events(c *gin.Context) {
	ctx := c.Request.Context()
	changes, err := h.store.Subscribe(ctx, middleware.SessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	signedIn := middleware.SignedIn(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.SSEvent("state", event{Key: "session", SignedIn: &signedIn})
	c.Writer.Flush()

	ticker := time.NewTicker(keepAliveEvery)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ch, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("state", toEvent(ch))
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
