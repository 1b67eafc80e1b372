package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/audit"
	"github.com/exactfit/customer-web/internal/domain/forms"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/httpresp"
	"github.com/exactfit/customer-web/internal/middleware"
	"github.com/exactfit/customer-web/internal/models"
	ucForms "github.com/exactfit/customer-web/internal/usecase/forms"
	"github.com/exactfit/customer-web/internal/validators"
)

// CatalogAPI is the public, token-free part of the backend.
type CatalogAPI interface {
	Settings(ctx context.Context) (*models.Settings, error)
	CreateContactUs(ctx context.Context, in models.ContactRequest) error
	Services(ctx context.Context) ([]models.Service, error)
	UserDetails(ctx context.Context) (*models.User, error)
	PackageBySlug(ctx context.Context, slug string) (*models.PackagePlan, error)
}

// ======================================================
// HANDLER
// ======================================================

type CatalogHandler struct {
	api          CatalogAPI
	selectPlan   *ucForms.SelectPlan
	audit        *audit.Dispatcher
	verifyDomain bool
	logger       *slog.Logger
}

func NewCatalogHandler(
	api CatalogAPI,
	selectPlan *ucForms.SelectPlan,
	audit *audit.Dispatcher,
	verifyDomain bool,
	logger *slog.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		api:          api,
		selectPlan:   selectPlan,
		audit:        audit,
		verifyDomain: verifyDomain,
		logger:       logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ContactRequest struct {
	FullName    string `json:"fullname" binding:"required"`
	Email       string `json:"email" binding:"required"`
	CountryCode string `json:"country_code"`
	Mobile      string `json:"mobile" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

// ======================================================
// SETTINGS / CONTACT
// ======================================================

func (h *CatalogHandler) Settings(c *gin.Context) {
	s, err := h.api.Settings(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *CatalogHandler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill in all required fields.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailValid(email, h.verifyDomain) {
		httperr.BadRequest(c, "invalid_email", businessMessages["invalid_email"])
		return
	}

	in := models.ContactRequest{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Mobile:   forms.FormatMobile(req.CountryCode, req.Mobile),
		Message:  strings.TrimSpace(req.Message),
	}
	if err := h.api.CreateContactUs(c.Request.Context(), in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		SessionID: middleware.SessionID(c),
		Phone:     middleware.UserPhone(c),
		Action:    audit.ActionContactSubmitted,
		Entity:    "contact",
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Thank you. We will get back to you shortly."})
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) Services(c *gin.Context) {
	services, err := h.api.Services(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) ServiceBySlug(c *gin.Context) {
	services, err := h.api.Services(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	svc, ok := forms.FindService(services, c.Param("slug"))
	if !ok {
		httperr.NotFound(c, "service_not_found", businessMessages["service_not_found"])
		return
	}
	c.JSON(http.StatusOK, svc)
}

// ======================================================
// PACKAGES
// ======================================================

func (h *CatalogHandler) Packages(c *gin.Context) {
	httpresp.List(c, models.PackagePlans)
}

func (h *CatalogHandler) PackageBySlug(c *gin.Context) {
	plan, err := ucForms.ResolvePlan(c.Request.Context(), h.api, c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// SelectPackage remembers the plan and returns the pre-filled enquiry draft.
func (h *CatalogHandler) SelectPackage(c *gin.Context) {
	v, err := h.selectPlan.Execute(
		c.Request.Context(),
		middleware.SessionID(c),
		middleware.UserPhone(c),
		c.Param("slug"),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func emailValid(email string, verifyDomain bool) bool {
	if !validators.IsEmail(email) {
		return false
	}
	return !verifyDomain || validators.IsEmailDomainValid(email)
}
