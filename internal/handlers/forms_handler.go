package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/exactfit/customer-web/internal/domain/forms"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/middleware"
	ucForms "github.com/exactfit/customer-web/internal/usecase/forms"
)

// ======================================================
// ENQUIRY
// ======================================================

type EnquiryHandler struct {
	draft  *ucForms.EnquiryDraft
	submit *ucForms.SubmitEnquiry
	logger *slog.Logger
}

func NewEnquiryHandler(draft *ucForms.EnquiryDraft, submit *ucForms.SubmitEnquiry, logger *slog.Logger) *EnquiryHandler {
	return &EnquiryHandler{draft: draft, submit: submit, logger: logger}
}

func (h *EnquiryHandler) GetDraft(c *gin.Context) {
	v, err := h.draft.Get(c.Request.Context(), middleware.SessionID(c), middleware.SignedIn(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EnquiryHandler) PatchDraft(c *gin.Context) {
	var p domain.EnquiryPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid form fields.")
		return
	}

	v, err := h.draft.Patch(c.Request.Context(), middleware.SessionID(c), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EnquiryHandler) ToggleAddressPanel(c *gin.Context) {
	v, err := h.draft.ToggleAddressPanel(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EnquiryHandler) SelectAddress(c *gin.Context) {
	v, err := h.draft.SelectAddress(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EnquiryHandler) Submit(c *gin.Context) {
	saved, err := h.submit.Execute(c.Request.Context(), middleware.SessionID(c), middleware.UserPhone(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Your enquiry has been submitted. Our team will contact you shortly.",
		"enquiry": saved,
	})
}

// ======================================================
// EMERGENCY
// ======================================================

type EmergencyHandler struct {
	draft  *ucForms.EmergencyDraft
	submit *ucForms.SubmitEmergency
	logger *slog.Logger
}

func NewEmergencyHandler(draft *ucForms.EmergencyDraft, submit *ucForms.SubmitEmergency, logger *slog.Logger) *EmergencyHandler {
	return &EmergencyHandler{draft: draft, submit: submit, logger: logger}
}

func (h *EmergencyHandler) GetDraft(c *gin.Context) {
	v, err := h.draft.Get(c.Request.Context(), middleware.SessionID(c), middleware.SignedIn(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EmergencyHandler) PatchDraft(c *gin.Context) {
	var p domain.EmergencyPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid form fields.")
		return
	}

	v, err := h.draft.Patch(c.Request.Context(), middleware.SessionID(c), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EmergencyHandler) ToggleAddressPanel(c *gin.Context) {
	v, err := h.draft.ToggleAddressPanel(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EmergencyHandler) ToggleServicePanel(c *gin.Context) {
	v, err := h.draft.ToggleServicePanel(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EmergencyHandler) SelectAddress(c *gin.Context) {
	v, err := h.draft.SelectAddress(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// SelectService takes the service in the path and an optional ?sub=.
func (h *EmergencyHandler) SelectService(c *gin.Context) {
	v, err := h.draft.SelectService(c.Request.Context(), middleware.SessionID(c), c.Param("id"), c.Query("sub"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *EmergencyHandler) Submit(c *gin.Context) {
	saved, err := h.submit.Execute(c.Request.Context(), middleware.SessionID(c), middleware.UserPhone(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Your emergency request has been received. A technician will call you right away.",
		"emergency": saved,
	})
}
