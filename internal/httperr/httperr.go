package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exactfit/customer-web/internal/apiclient"
)

const (
	// ContextSessionExpired is set on the gin context when the backend
	// refused the session's token.
	ContextSessionExpired = "sessionExpired"
	// ContextToken holds the session's backend token, if any.
	ContextToken = "token"
)

type HTTPError struct {
	Code    string         `json:"error_code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func WriteDetails(c *gin.Context, status int, code, message string, details map[string]any) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromBackend turns a failed backend call into a response the page can act
// on. Network trouble, validation failures and plain rejections get distinct
// codes instead of one generic failure message.
func FromBackend(c *gin.Context, logger *slog.Logger, err error) {
	if ctxErr := c.Request.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		// client went away; nobody is listening
		c.Abort()
		return
	}

	apiErr, ok := apiclient.AsError(err)
	if !ok {
		logger.Error("backend call failed", "error", err, "path", c.FullPath())
		Write(c, http.StatusBadGateway, "backend_unavailable", "The service is temporarily unavailable. Please try again.")
		return
	}

	logger.Warn("backend call failed",
		"endpoint", apiErr.Endpoint,
		"kind", apiErr.Kind,
		"status", apiErr.Status,
		"error", apiErr,
	)

	switch apiErr.Kind {
	case apiclient.KindValidation:
		WriteDetails(c, http.StatusBadRequest, "backend_validation", messageOr(apiErr.Message, "Some details were rejected. Please check the form."), backendDetails(apiErr))
	case apiclient.KindUnauthorized:
		// Without a token there is no session to expire: the backend
		// refused the code itself (verify-otp answers 401/403).
		if c.GetString(ContextToken) == "" {
			Write(c, http.StatusBadRequest, "invalid_otp", "That code is not valid. Please check it and try again.")
			return
		}
		c.Set(ContextSessionExpired, true)
		Write(c, http.StatusUnauthorized, "session_expired", "Your session has expired. Please sign in again.")
	case apiclient.KindRejected:
		status := apiErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusUnprocessableEntity
		}
		WriteDetails(c, status, "backend_rejected", messageOr(apiErr.Message, "The request was not accepted."), backendDetails(apiErr))
	default:
		Write(c, http.StatusBadGateway, "backend_unavailable", "The service is temporarily unavailable. Please try again.")
	}
}

func backendDetails(e *apiclient.Error) map[string]any {
	if e.Code == "" {
		return nil
	}
	return map[string]any{"backend_code": e.Code}
}

func messageOr(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}
