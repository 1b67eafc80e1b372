package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/apiclient"
	"github.com/exactfit/customer-web/internal/domain/forms"
	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/upload"
)

var businessMessages = map[string]string{
	"invalid_phone":          "Enter your number with the country code, for example +971501234567.",
	"invalid_otp":            "Enter the 6-digit code we sent you.",
	"invalid_state":          "Please start again.",
	"invalid_box":            "Unknown OTP box.",
	"invalid_box_op":         "Unknown OTP box action.",
	"resend_not_allowed":     "Please wait before requesting a new code.",
	"invalid_status":         "Unknown status filter.",
	"address_not_found":      "That address is not in your account.",
	"service_not_found":      "That service does not exist.",
	"sub_service_not_found":  "That service option does not exist.",
	"attachment_not_found":   "That attachment is no longer pending.",
	"too_many_attachments":   "You can attach up to 5 files.",
	"invalid_attachment_url": "Upload the file through the presigned link first.",
	"package_not_found":      "That package does not exist.",
	"invalid_email":          "Enter a valid email address.",
}

var businessStatus = map[string]int{
	"resend_not_allowed":    http.StatusTooManyRequests,
	"invalid_state":         http.StatusConflict,
	"address_not_found":     http.StatusNotFound,
	"service_not_found":     http.StatusNotFound,
	"sub_service_not_found": http.StatusNotFound,
	"attachment_not_found":  http.StatusNotFound,
	"package_not_found":     http.StatusNotFound,
}

// respondError writes the JSON error for anything a use case returned.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if ie, ok := forms.AsIncomplete(err); ok {
		httperr.WriteDetails(c, http.StatusBadRequest, "form_incomplete", "Please fill in all required fields.",
			map[string]any{"missing": ie.Missing})
		return
	}

	if be, ok := httperr.AsBusiness(err); ok {
		status, found := businessStatus[be.Code]
		if !found {
			status = http.StatusBadRequest
		}
		msg := be.Message
		if msg == "" {
			msg = businessMessages[be.Code]
		}
		httperr.Write(c, status, be.Code, msg)
		return
	}

	switch {
	case errors.Is(err, upload.ErrTooLarge):
		httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "Files can be up to 10 MB.")
		return
	case errors.Is(err, upload.ErrUnsupported):
		httperr.Write(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "Attach an image or a PDF.")
		return
	case errors.Is(err, upload.ErrNoPresign):
		httperr.Write(c, http.StatusConflict, "presign_unavailable", "Direct uploads are not available. Upload through the form instead.")
		return
	}

	if _, ok := apiclient.AsError(err); ok || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		httperr.FromBackend(c, logger, err)
		return
	}

	logger.Error("request failed", "error", err, "path", c.FullPath())
	httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
}

// pageParams reads ?page=&limit= with the usual bounds.
func pageParams(c *gin.Context, defLimit, maxLimit int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit)))
	if limit <= 0 || limit > maxLimit {
		limit = defLimit
	}
	return page, limit
}
