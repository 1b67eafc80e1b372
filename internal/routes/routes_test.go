package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exactfit/customer-web/internal/apiclient"
	"github.com/exactfit/customer-web/internal/audit"
	"github.com/exactfit/customer-web/internal/config"
	"github.com/exactfit/customer-web/internal/logging"
	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/session"
	"github.com/exactfit/customer-web/internal/state"
	"github.com/exactfit/customer-web/internal/upload"
	"github.com/exactfit/customer-web/internal/web"
)

// ======================================================
// FAKE BACKEND
// ======================================================

type backend struct {
	mu        sync.Mutex
	calls     map[string]int
	enquiries []models.Enquiry
	tickets   []models.NewTicket
	expired   bool
}

func (b *backend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func reply(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": status < 300, "message": "ok", "data": data})
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls[r.URL.Path]++
	expired := b.expired
	b.mu.Unlock()

	if expired && r.Header.Get("Authorization") != "" {
		reply(w, http.StatusUnauthorized, nil)
		return
	}

	switch r.URL.Path {
	case "/user/user-auth/V1/send-otp", "/user/user-auth/V1/resend-otp":
		reply(w, http.StatusOK, nil)
	case "/user/user-auth/V1/verify-otp":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body["otp"] {
		case "123456":
		case "401401":
			reply(w, http.StatusUnauthorized, nil)
			return
		default:
			reply(w, http.StatusBadRequest, nil)
			return
		}
		reply(w, http.StatusOK, models.OTPGrant{Token: "tok-1", IsProfileUpdate: true})
	case "/user/user-auth/V1/user-details":
		reply(w, http.StatusOK, models.User{
			FullName:  "Mariam Khan",
			Email:     "mariam@example.com",
			Mobile:    "+971501234567",
			Addresses: []models.Address{{ID: "a1", Label: "Home", Area: "Al Barsha"}},
		})
	case "/user/booking/V1/upsert-enquiry":
		var in models.Enquiry
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		b.enquiries = append(b.enquiries, in)
		b.mu.Unlock()
		in.ID = "e1"
		reply(w, http.StatusOK, in)
	case "/user/booking/V1/get-all-enquiry":
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		reply(w, http.StatusOK, []models.Enquiry{
			{ID: "e1", ScopeOfWork: "Kitchen", Status: "Pending", CreatedAt: base},
			{ID: "e2", ScopeOfWork: "Painting", Status: "Completed", CreatedAt: base.Add(time.Hour)},
		})
	case "/user/booking/V1/get-all-emergency":
		reply(w, http.StatusOK, []models.EmergencyRequest{})
	case "/user/user-subscription/V1/get-package/hollow":
		reply(w, http.StatusOK, nil)
	case "/user/ticket/V1/rise-ticket":
		var in models.NewTicket
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		b.tickets = append(b.tickets, in)
		b.mu.Unlock()
		reply(w, http.StatusOK, models.Ticket{ID: "t1", TicketNumber: "TK-1", Title: in.Title, Status: "Open"})
	default:
		reply(w, http.StatusNotFound, nil)
	}
}

// ======================================================
// FIXTURE
// ======================================================

type memBlobs struct{}

func (memBlobs) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	return "https://cdn.test/" + key, nil
}

type browser struct {
	t      *testing.T
	engine *gin.Engine
	cookie *http.Cookie
}

func newBrowser(t *testing.T, be *backend) *browser {
	t.Helper()
	return newBrowserWith(t, be, &config.Config{
		OTPResendSeconds: 30,
		OTPRatePerMinute: 600,
		OTPRateBurst:     100,
	})
}

func newBrowserWith(t *testing.T, be *backend, cfg *config.Config) *browser {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)

	logger := logging.Discard()
	sink := audit.NewMemorySink(50)
	dispatcher := audit.NewDispatcher(sink, logger)
	t.Cleanup(dispatcher.Close)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	RegisterRoutes(r, cfg, Infra{
		Backend:  apiclient.NewWithHTTPClient(srv.URL, srv.Client(), logger),
		Store:    state.NewMemoryStore(),
		Uploader: upload.NewUploader(memBlobs{}, logger),
		Sink:     sink,
		Audit:    dispatcher,
		Signer:   session.NewSigner("test-secret", time.Hour),
		Logger:   logger,
	})

	return &browser{t: t, engine: r}
}

func (b *browser) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.engine.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			b.cookie = ck
		}
	}
	return w
}

func (b *browser) json(method, path string, body any) *httptest.ResponseRecorder {
	b.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		reader = bytes.NewReader(raw)
	}
	return b.do(method, path, "application/json", reader)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (b *browser) signIn() {
	b.t.Helper()
	require.Equal(b.t, http.StatusOK, b.json(http.MethodPost, "/api/auth/otp/request", map[string]string{"phone": "+971501234567"}).Code)
	require.Equal(b.t, http.StatusOK, b.json(http.MethodPost, "/api/auth/otp/verify", map[string]string{"otp": "123456"}).Code)
}

// ======================================================
// TESTS
// ======================================================

func TestHealth(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})
	w := b.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignInFlowSetsSessionAndRedirectTarget(t *testing.T) {
	be := &backend{calls: map[string]int{}}
	b := newBrowser(t, be)

	w := b.json(http.MethodPost, "/api/auth/otp/request", map[string]string{"phone": "+971501234567"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, b.cookie)
	assert.True(t, b.cookie.HttpOnly)

	view := decode(t, w)
	assert.Equal(t, "otp", view["stage"])
	assert.Equal(t, float64(30), view["seconds_left"])
	assert.Equal(t, false, view["can_resend"])

	w = b.json(http.MethodPost, "/api/auth/otp/boxes", map[string]any{"op": "paste", "index": 0, "value": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["can_login"])

	w = b.do(http.MethodPost, "/api/auth/otp/verify", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = decode(t, w)
	assert.Equal(t, true, view["signed_in"])
	assert.Equal(t, "/", view["next"])

	w = b.do(http.MethodGet, "/api/auth/state", "", nil)
	assert.Equal(t, true, decode(t, w)["signed_in"])
	assert.Equal(t, 1, be.count("/user/user-auth/V1/send-otp"))
}

func TestTypingDigitsSinglyIsNotRateLimited(t *testing.T) {
	be := &backend{calls: map[string]int{}}
	b := newBrowserWith(t, be, &config.Config{
		OTPResendSeconds: 30,
		OTPRatePerMinute: 10,
		OTPRateBurst:     5,
	})

	w := b.json(http.MethodPost, "/api/auth/otp/request", map[string]string{"phone": "+971501234567"})
	require.Equal(t, http.StatusOK, w.Code)

	for i, d := range "123456" {
		w = b.json(http.MethodPost, "/api/auth/otp/boxes", map[string]any{"op": "input", "index": i, "value": string(d)})
		require.Equal(t, http.StatusOK, w.Code, "digit %d", i)
	}
	assert.Equal(t, true, decode(t, w)["can_login"])

	w = b.do(http.MethodPost, "/api/auth/otp/verify", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["signed_in"])
}

func TestOTPRequestsAreRateLimited(t *testing.T) {
	be := &backend{calls: map[string]int{}}
	b := newBrowserWith(t, be, &config.Config{
		OTPResendSeconds: 30,
		OTPRatePerMinute: 10,
		OTPRateBurst:     5,
	})

	for i := 0; i < 5; i++ {
		w := b.json(http.MethodPost, "/api/auth/otp/request", map[string]string{"phone": "+971501234567"})
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
	w := b.json(http.MethodPost, "/api/auth/otp/request", map[string]string{"phone": "+971501234567"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 5, be.count("/user/user-auth/V1/send-otp"))
}

func TestPhoneCheckGatesContinue(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})

	w := b.json(http.MethodPost, "/api/auth/phone", map[string]string{"phone": "+971501234567"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["can_continue"])

	w = b.json(http.MethodPost, "/api/auth/phone", map[string]string{"phone": "0501234567"})
	assert.Equal(t, false, decode(t, w)["can_continue"])

	w = b.json(http.MethodPost, "/api/auth/otp/request", map[string]string{"phone": "0501234567"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_phone", decode(t, w)["error_code"])
}

func TestResendTooEarlyReportsSecondsLeft(t *testing.T) {
	be := &backend{calls: map[string]int{}}
	b := newBrowser(t, be)

	b.json(http.MethodPost, "/api/auth/otp/request", map[string]string{"phone": "+971501234567"})
	w := b.do(http.MethodPost, "/api/auth/otp/resend", "", nil)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decode(t, w)
	assert.Equal(t, "resend_not_allowed", body["error_code"])
	details := body["details"].(map[string]any)
	assert.Greater(t, details["seconds_left"].(float64), float64(0))
	assert.Zero(t, be.count("/user/user-auth/V1/resend-otp"))
}

func TestWrongCodeKeepsSessionSignedOut(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})

	b.json(http.MethodPost, "/api/auth/otp/request", map[string]string{"phone": "+971501234567"})
	w := b.json(http.MethodPost, "/api/auth/otp/verify", map[string]string{"otp": "000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = b.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "not_signed_in", decode(t, w)["error_code"])
}

func TestRefusedCodeIsNotAnExpiredSession(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})

	b.json(http.MethodPost, "/api/auth/otp/request", map[string]string{"phone": "+971501234567"})
	w := b.json(http.MethodPost, "/api/auth/otp/verify", map[string]string{"otp": "401401"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_otp", decode(t, w)["error_code"])

	w = b.json(http.MethodPost, "/api/auth/otp/verify", map[string]string{"otp": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["signed_in"])
}

func TestSecuredRoutesNeedSignIn(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})

	for _, path := range []string{"/api/me", "/api/me/bookings", "/api/me/tickets", "/api/me/notifications"} {
		w := b.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w := b.do(http.MethodPost, "/api/enquiry", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEnquirySubmitsOnceWithFormattedMobile(t *testing.T) {
	be := &backend{calls: map[string]int{}}
	b := newBrowser(t, be)
	b.signIn()

	w := b.do(http.MethodGet, "/api/enquiry/draft", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = b.json(http.MethodPatch, "/api/enquiry/draft", map[string]any{
		"country_code":  "+971",
		"mobile":        "50 765 4321",
		"scope_of_work": "Kitchen renovation",
		"budget_from":   5000,
		"budget_to":     9000,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["ready"])

	w = b.do(http.MethodPost, "/api/enquiry", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "form_incomplete", decode(t, w)["error_code"])
	assert.Zero(t, be.count("/user/booking/V1/upsert-enquiry"))

	w = b.do(http.MethodPost, "/api/enquiry/draft/address/a1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Home", decode(t, w)["address_display"])

	w = b.do(http.MethodPost, "/api/enquiry", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, be.count("/user/booking/V1/upsert-enquiry"))

	require.Len(t, be.enquiries, 1)
	sent := be.enquiries[0]
	assert.Equal(t, "+971507654321", sent.Mobile)
	assert.Equal(t, "mariam@example.com", sent.Email)
	assert.Equal(t, "a1", sent.AddressID)
}

func TestUnknownAddressIsNotFound(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})
	b.signIn()

	w := b.do(http.MethodPost, "/api/enquiry/draft/address/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "address_not_found", decode(t, w)["error_code"])
}

func TestUnknownPackageIsNotFound(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})

	for _, slug := range []string{"gold", "hollow"} {
		w := b.do(http.MethodGet, "/api/packages/"+slug, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, slug)
		assert.Equal(t, "package_not_found", decode(t, w)["error_code"], slug)

		w = b.do(http.MethodPost, "/api/packages/"+slug+"/select", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, slug)
	}
}

func TestBookingsStatusFilter(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})
	b.signIn()

	w := b.do(http.MethodGet, "/api/me/bookings?status=completed&expanded=enquiry:e2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Completed", body["status"])
	assert.Equal(t, float64(1), body["total"])
	row := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "enquiry:e2", row["id"])
	assert.Equal(t, "e2", row["ref"])
	assert.Equal(t, true, row["expanded"])

	w = b.do(http.MethodGet, "/api/me/bookings", "", nil)
	assert.Equal(t, float64(2), decode(t, w)["total"])

	w = b.do(http.MethodGet, "/api/me/bookings?status=Lost", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", decode(t, w)["error_code"])
}

func pdfUpload(t *testing.T, name string) (string, io.Reader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), &buf
}

func TestTicketAttachmentsKeepOrderAndRaise(t *testing.T) {
	be := &backend{calls: map[string]int{}}
	b := newBrowser(t, be)
	b.signIn()

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		ct, body := pdfUpload(t, name)
		w := b.do(http.MethodPost, "/api/me/tickets/attachments", ct, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := b.do(http.MethodDelete, "/api/me/tickets/attachments/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data []models.Attachment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 2)
	assert.Equal(t, "a.pdf", list.Data[0].Name)
	assert.Equal(t, "c.pdf", list.Data[1].Name)

	w = b.do(http.MethodDelete, "/api/me/tickets/attachments/7", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = b.json(http.MethodPost, "/api/me/tickets", map[string]string{"title": "Leak", "description": "Kitchen sink"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, be.tickets, 1)
	assert.Len(t, be.tickets[0].Attachments, 2)
	assert.True(t, strings.HasPrefix(be.tickets[0].Attachments[0], "https://cdn.test/tickets/"))

	w = b.do(http.MethodGet, "/api/me/tickets/attachments", "", nil)
	assert.Equal(t, float64(0), decode(t, w)["total"])
}

func TestExpiredTokenSignsOut(t *testing.T) {
	be := &backend{calls: map[string]int{}}
	b := newBrowser(t, be)
	b.signIn()

	be.mu.Lock()
	be.expired = true
	be.mu.Unlock()

	w := b.do(http.MethodGet, "/api/me/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "session_expired", decode(t, w)["error_code"])

	w = b.do(http.MethodGet, "/api/me/bookings", "", nil)
	assert.Equal(t, "not_signed_in", decode(t, w)["error_code"])

	w = b.do(http.MethodGet, "/api/auth/state", "", nil)
	view := decode(t, w)
	assert.Equal(t, false, view["signed_in"])
	assert.Equal(t, "phone", view["stage"])

	be.mu.Lock()
	be.expired = false
	be.mu.Unlock()

	b.signIn()
	w = b.do(http.MethodGet, "/api/me/bookings", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignInPageRedirectsWhenSignedIn(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})

	w := b.do(http.MethodGet, "/dashboard", "", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))

	b.signIn()
	w = b.do(http.MethodGet, "/signin", "", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	b := newBrowser(t, &backend{calls: map[string]int{}})
	b.signIn()

	w := b.do(http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = b.do(http.MethodGet, "/api/auth/state", "", nil)
	assert.Equal(t, false, decode(t, w)["signed_in"])
}
