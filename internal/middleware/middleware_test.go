package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/logging"
	"github.com/exactfit/customer-web/internal/session"
	"github.com/exactfit/customer-web/internal/state"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenLimiterRefillsOverTime(t *testing.T) {
	l := newTokenLimiter(60, 2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ok, _ := l.allow("1.2.3.4", now)
	assert.True(t, ok)
	ok, _ = l.allow("1.2.3.4", now)
	assert.True(t, ok)

	ok, wait := l.allow("1.2.3.4", now)
	assert.False(t, ok)
	assert.InDelta(t, time.Second, wait, float64(10*time.Millisecond))

	ok, _ = l.allow("5.6.7.8", now)
	assert.True(t, ok, "buckets are per key")

	ok, _ = l.allow("1.2.3.4", now.Add(time.Second))
	assert.True(t, ok)
}

func TestTokenLimiterDropsIdleBuckets(t *testing.T) {
	l := newTokenLimiter(60, 5)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		ok, _ := l.allow(ip, now)
		require.True(t, ok)
	}
	assert.Equal(t, 3, l.size())

	// A bucket with 5 tokens at 1/s is full again after 5s.
	later := now.Add(5 * time.Second)
	ok, _ := l.allow("10.0.0.9", later)
	require.True(t, ok)
	assert.Equal(t, 1, l.size())

	ok, _ = l.allow("10.0.0.9", later.Add(time.Second))
	require.True(t, ok)
	assert.Equal(t, 1, l.size())
}

func TestRateLimitWritesRetryAfter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(1, 1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://exactfit.ae"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://exactfit.ae")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://exactfit.ae", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORSWithoutOriginsIsClosed(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSessionMiddlewareIssuesAndKeepsCookie(t *testing.T) {
	signer := session.NewSigner("secret", time.Hour)
	r := gin.New()
	r.Use(SessionMiddleware(signer, true, logging.Discard()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, session.CookieName, ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	first := w.Body.String()
	assert.NotEmpty(t, first)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, first, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionMiddlewareReplacesTamperedCookie(t *testing.T) {
	r := gin.New()
	r.Use(SessionMiddleware(session.NewSigner("secret", time.Hour), false, logging.Discard()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Len(t, w.Result().Cookies(), 1)
	assert.NotEmpty(t, w.Body.String())
}

func withSession(sid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

func TestLoadTokenAndRequireSignIn(t *testing.T) {
	store := state.NewMemoryStore()
	require.NoError(t, store.Set(t.Context(), "s1", state.KeyToken, "tok"))
	require.NoError(t, store.Set(t.Context(), "s1", state.KeyUserPhone, "+971501234567"))

	for _, tc := range []struct {
		sid  string
		want int
	}{
		{"s1", http.StatusOK},
		{"s2", http.StatusUnauthorized},
	} {
		r := gin.New()
		r.Use(withSession(tc.sid), LoadToken(store, logging.Discard()), RequireSignIn())
		r.GET("/", func(c *gin.Context) {
			assert.Equal(t, "+971501234567", UserPhone(c))
			assert.Equal(t, "tok", c.GetString(ContextToken))
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tc.want, w.Code, tc.sid)
	}
}

func TestLoadTokenDropsRejectedToken(t *testing.T) {
	store := state.NewMemoryStore()
	require.NoError(t, store.Set(t.Context(), "s1", state.KeyToken, "tok"))
	require.NoError(t, store.Set(t.Context(), "s1", state.KeySignIn, `{"stage":"done"}`))

	r := gin.New()
	r.Use(withSession("s1"), LoadToken(store, logging.Discard()))
	r.GET("/", func(c *gin.Context) {
		c.Set(httperr.ContextSessionExpired, true)
		c.Status(http.StatusUnauthorized)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, key := range []string{state.KeyToken, state.KeySignIn} {
		v, err := state.GetString(t.Context(), store, "s1", key)
		require.NoError(t, err)
		assert.Empty(t, v, key)
	}
}
