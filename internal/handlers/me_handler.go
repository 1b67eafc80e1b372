package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/audit"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/middleware"
	"github.com/exactfit/customer-web/internal/models"
)

type ProfileAPI interface {
	UserDetails(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
	UpsertAddress(ctx context.Context, addr models.Address) (*models.Address, error)
	DeleteAddress(ctx context.Context, id string) error
}

// ======================================================
// HANDLER
// ======================================================

type MeHandler struct {
	api          ProfileAPI
	audit        *audit.Dispatcher
	verifyDomain bool
	logger       *slog.Logger
}

func NewMeHandler(api ProfileAPI, audit *audit.Dispatcher, verifyDomain bool, logger *slog.Logger) *MeHandler {
	return &MeHandler{
		api:          api,
		audit:        audit,
		verifyDomain: verifyDomain,
		logger:       logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateProfileRequest struct {
	FullName *string `json:"fullname"`
	Email    *string `json:"email"`
}

type AddressRequest struct {
	Label     string  `json:"label" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	Emirate   string  `json:"emirate"`
	Area      string  `json:"area"`
	Building  string  `json:"building"`
	Apartment string  `json:"apartment"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

func (r AddressRequest) toModel(id string) models.Address {
	return models.Address{
		ID:        id,
		Label:     strings.TrimSpace(r.Label),
		Address:   strings.TrimSpace(r.Address),
		Emirate:   strings.TrimSpace(r.Emirate),
		Area:      strings.TrimSpace(r.Area),
		Building:  strings.TrimSpace(r.Building),
		Apartment: strings.TrimSpace(r.Apartment),
		Lat:       r.Lat,
		Lng:       r.Lng,
	}
}

// ======================================================
// PROFILE
// ======================================================

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.api.UserDetails(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if user.Addresses == nil {
		user.Addresses = []models.Address{}
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"phone": middleware.UserPhone(c),
	})
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile details.")
		return
	}

	var in models.ProfileUpdate
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			httperr.BadRequest(c, "invalid_fullname", "Enter your full name.")
			return
		}
		in.FullName = &name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailValid(email, h.verifyDomain) {
			httperr.BadRequest(c, "invalid_email", businessMessages["invalid_email"])
			return
		}
		in.Email = &email
	}
	if in.FullName == nil && in.Email == nil {
		httperr.BadRequest(c, "nothing_to_update", "Nothing to update.")
		return
	}

	user, err := h.api.UpdateProfile(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ======================================================
// ADDRESSES
// ======================================================

// ListAddresses filters the user's addresses by ?label= and a free-text ?q=.
func (h *MeHandler) ListAddresses(c *gin.Context) {
	user, err := h.api.UserDetails(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	label := strings.TrimSpace(c.Query("label"))
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))

	out := make([]models.Address, 0, len(user.Addresses))
	for _, a := range user.Addresses {
		if label != "" && !strings.EqualFold(a.Label, label) {
			continue
		}
		if q != "" && !addressMatches(a, q) {
			continue
		}
		out = append(out, a)
	}

	c.JSON(http.StatusOK, gin.H{"data": out, "total": len(out), "labels": models.AddressLabels})
}

func addressMatches(a models.Address, q string) bool {
	for _, f := range []string{a.Label, a.Address, a.Emirate, a.Area, a.Building, a.Apartment} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (h *MeHandler) CreateAddress(c *gin.Context) {
	h.saveAddress(c, "", http.StatusCreated)
}

func (h *MeHandler) UpdateAddress(c *gin.Context) {
	h.saveAddress(c, c.Param("id"), http.StatusOK)
}

func (h *MeHandler) saveAddress(c *gin.Context, id string, status int) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Label and address are required.")
		return
	}

	saved, err := h.api.UpsertAddress(c.Request.Context(), req.toModel(id))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		SessionID: middleware.SessionID(c),
		Phone:     middleware.UserPhone(c),
		Action:    audit.ActionAddressSaved,
		Entity:    "address",
		EntityRef: saved.ID,
		Metadata:  map[string]any{"label": saved.Label},
	})

	c.JSON(status, saved)
}

func (h *MeHandler) DeleteAddress(c *gin.Context) {
	id := c.Param("id")
	if err := h.api.DeleteAddress(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		SessionID: middleware.SessionID(c),
		Phone:     middleware.UserPhone(c),
		Action:    audit.ActionAddressDeleted,
		Entity:    "address",
		EntityRef: id,
	})

	c.Status(http.StatusNoContent)
}
