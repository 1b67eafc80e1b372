package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/exactfit/customer-web/internal/domain/signin"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/middleware"
	ucSignin "github.com/exactfit/customer-web/internal/usecase/signin"
)

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	getState *ucSignin.GetState
	request  *ucSignin.RequestOTP
	resend   *ucSignin.ResendOTP
	boxes    *ucSignin.EditBoxes
	verify   *ucSignin.VerifyOTP
	logout   *ucSignin.Logout
	logger   *slog.Logger
}

func NewAuthHandler(
	getState *ucSignin.GetState,
	request *ucSignin.RequestOTP,
	resend *ucSignin.ResendOTP,
	boxes *ucSignin.EditBoxes,
	verify *ucSignin.VerifyOTP,
	logout *ucSignin.Logout,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		getState: getState,
		request:  request,
		resend:   resend,
		boxes:    boxes,
		verify:   verify,
		logout:   logout,
		logger:   logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type PhoneRequest struct {
	Phone string `json:"phone"`
}

type BoxesRequest struct {
	Op    string `json:"op" binding:"required"`
	Index int    `json:"index"`
	Value string `json:"value"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *AuthHandler) State(c *gin.Context) {
	v, err := h.getState.Execute(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// CheckPhone backs the phone input: nothing is stored, the answer only
// enables or disables "Continue".
func (h *AuthHandler) CheckPhone(c *gin.Context) {
	var req PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Enter your phone number.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"phone":        domain.NormalizePhone(req.Phone),
		"can_continue": domain.CanContinue(req.Phone),
	})
}

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Enter your phone number.")
		return
	}

	v, err := h.request.Execute(c.Request.Context(), middleware.SessionID(c), req.Phone)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	v, err := h.resend.Execute(ctx, sid)
	if err != nil {
		if httperr.IsBusiness(err, "resend_not_allowed") {
			if cur, stateErr := h.getState.Execute(ctx, sid); stateErr == nil {
				httperr.WriteDetails(c, http.StatusTooManyRequests, "resend_not_allowed",
					businessMessages["resend_not_allowed"],
					map[string]any{"seconds_left": cur.SecondsLeft})
				return
			}
		}
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *AuthHandler) EditBoxes(c *gin.Context) {
	var req BoxesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid OTP box event.")
		return
	}

	v, err := h.boxes.Execute(c.Request.Context(), middleware.SessionID(c), ucSignin.EditBoxesInput{
		Op:    ucSignin.BoxOp(req.Op),
		Index: req.Index,
		Value: req.Value,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid code.")
			return
		}
	}

	v, err := h.verify.Execute(c.Request.Context(), middleware.SessionID(c), req.OTP)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logout.Execute(c.Request.Context(), middleware.SessionID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
