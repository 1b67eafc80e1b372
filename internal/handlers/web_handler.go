package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/domain/forms"
	"github.com/exactfit/customer-web/internal/middleware"
	"github.com/exactfit/customer-web/internal/models"
)

type PagesAPI interface {
	Settings(ctx context.Context) (*models.Settings, error)
	Services(ctx context.Context) ([]models.Service, error)
}

// WebHandler renders the server-side pages. Every page goes through the one
// "base" template; Page picks the body.
type WebHandler struct {
	api        PagesAPI
	mapsScript string
	logger     *slog.Logger
}

func NewWebHandler(api PagesAPI, mapsScript string, logger *slog.Logger) *WebHandler {
	return &WebHandler{api: api, mapsScript: mapsScript, logger: logger}
}

// addressPages edit or pick addresses and need the Places script.
var addressPages = map[string]bool{
	"enquiry":       true,
	"emergency":     true,
	"profile_setup": true,
	"dashboard":     true,
}

func (h *WebHandler) render(c *gin.Context, status int, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Page"] = page
	data["Title"] = title
	data["SignedIn"] = middleware.SignedIn(c)
	if addressPages[page] {
		data["MapsScript"] = h.mapsScript
	}

	// The footer shows contact details; a backend hiccup must not take the
	// page down with it.
	if settings, err := h.api.Settings(c.Request.Context()); err == nil {
		data["Settings"] = settings
	} else {
		h.logger.Warn("settings unavailable for page", "page", page, "error", err)
	}

	c.HTML(status, "base", data)
}

func (h *WebHandler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "home", "Exact Fit", gin.H{"Plans": models.PackagePlans})
}

func (h *WebHandler) Services(c *gin.Context) {
	services, err := h.api.Services(c.Request.Context())
	if err != nil {
		h.logger.Warn("services unavailable", "error", err)
		h.render(c, http.StatusBadGateway, "error", "Services", gin.H{"Message": "Our services list is unavailable right now. Please try again shortly."})
		return
	}
	h.render(c, http.StatusOK, "services", "Services", gin.H{"Services": services})
}

func (h *WebHandler) ServiceDetail(c *gin.Context) {
	services, err := h.api.Services(c.Request.Context())
	if err != nil {
		h.logger.Warn("services unavailable", "error", err)
		h.render(c, http.StatusBadGateway, "error", "Services", gin.H{"Message": "This service is unavailable right now. Please try again shortly."})
		return
	}

	svc, ok := forms.FindService(services, c.Param("slug"))
	if !ok {
		h.render(c, http.StatusNotFound, "error", "Not found", gin.H{"Message": "We could not find that service."})
		return
	}
	h.render(c, http.StatusOK, "service_detail", svc.Title, gin.H{"Service": svc})
}

func (h *WebHandler) Packages(c *gin.Context) {
	h.render(c, http.StatusOK, "packages", "Maintenance packages", gin.H{"Plans": models.PackagePlans})
}

func (h *WebHandler) Enquiry(c *gin.Context) {
	h.render(c, http.StatusOK, "enquiry", "Request a quote", gin.H{"Plan": c.Query("plan")})
}

func (h *WebHandler) Emergency(c *gin.Context) {
	h.render(c, http.StatusOK, "emergency", "Emergency service", nil)
}

func (h *WebHandler) Contact(c *gin.Context) {
	h.render(c, http.StatusOK, "contact", "Contact us", nil)
}

func (h *WebHandler) SignIn(c *gin.Context) {
	if middleware.SignedIn(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "signin", "Sign in", gin.H{"OTPBoxes": []int{0, 1, 2, 3, 4, 5}})
}

func (h *WebHandler) ProfileSetup(c *gin.Context) {
	if !middleware.SignedIn(c) {
		c.Redirect(http.StatusSeeOther, "/signin")
		return
	}
	h.render(c, http.StatusOK, "profile_setup", "Complete your profile", gin.H{"Labels": models.AddressLabels})
}

func (h *WebHandler) Dashboard(c *gin.Context) {
	if !middleware.SignedIn(c) {
		c.Redirect(http.StatusSeeOther, "/signin")
		return
	}
	h.render(c, http.StatusOK, "dashboard", "My account", gin.H{
		"BookingStatuses":      models.BookingStatusOptions,
		"SubscriptionStatuses": models.SubscriptionStatusOptions,
		"TicketStatuses":       models.TicketStatusOptions,
		"Tab":                  c.DefaultQuery("tab", "bookings"),
	})
}
