package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tells callers what went wrong with a backend call so the UI can say
// something better than "something went wrong".
type Kind string

const (
	KindNetwork      Kind = "network"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindRejected     Kind = "rejected"
	KindServer       Kind = "server"
	KindDecode       Kind = "decode"
)

type Error struct {
	Kind     Kind
	Endpoint string
	Status   int
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("backend %s: %s (status %d): %s", e.Endpoint, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("backend %s: %s: %s", e.Endpoint, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// AsError extracts the backend error from err, if there is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status >= 500:
		return KindServer
	default:
		return KindRejected
	}
}
