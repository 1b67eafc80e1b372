package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/apiclient"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/session"
	"github.com/exactfit/customer-web/internal/state"
)

const (
	ContextSessionID = "sessionID"
	ContextToken     = httperr.ContextToken
	ContextUserPhone = "userPhone"
)

// SessionMiddleware makes sure every visitor carries a signed session
// cookie. A missing or tampered cookie starts a new anonymous session.
func SessionMiddleware(signer *session.Signer, secure bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(session.CookieName); err == nil {
			if id, err := signer.Parse(raw); err == nil {
				c.Set(ContextSessionID, id)
				c.Next()
				return
			}
		}

		id, signed, err := signer.New()
		if err != nil {
			logger.Error("session sign failed", "error", err)
			httperr.Internal(c, "session_failed", "Could not start a session.")
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(session.CookieName, signed, int(signer.TTL().Seconds()), "/", "", secure, true)
		c.Set(ContextSessionID, id)
		c.Next()
	}
}

// LoadToken attaches the backend token of a signed-in session to the
// request context. Anonymous sessions pass through untouched.
func LoadToken(store state.Store, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := SessionID(c)
		ctx := c.Request.Context()

		token, err := state.GetString(ctx, store, sid, state.KeyToken)
		if err != nil {
			logger.Error("state read failed", "error", err)
			httperr.Internal(c, "state_unavailable", "Please try again.")
			return
		}
		if token != "" {
			phone, _ := state.GetString(ctx, store, sid, state.KeyUserPhone)
			c.Set(ContextToken, token)
			c.Set(ContextUserPhone, phone)
			c.Request = c.Request.WithContext(apiclient.WithToken(ctx, token))
		}

		c.Next()

		// The backend no longer accepts the token: forget it so the next
		// page shows the signed-out state.
		if token != "" && c.GetBool(httperr.ContextSessionExpired) {
			if err := store.Delete(ctx, sid, state.KeyToken, state.KeyUserPhone, state.KeySignIn); err != nil {
				logger.Warn("drop expired token", "error", err)
			}
		}
	}
}

func RequireSignIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SignedIn(c) {
			httperr.Unauthorized(c, "not_signed_in", "Please sign in to continue.")
			return
		}
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

func UserPhone(c *gin.Context) string {
	return c.GetString(ContextUserPhone)
}

func SignedIn(c *gin.Context) bool {
	return c.GetString(ContextToken) != ""
}
