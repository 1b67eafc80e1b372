package listing

import (
	"strings"

	"github.com/exactfit/customer-web/internal/httperr"
)

const StatusAll = "All"

// ValidStatus checks status against a view's fixed options. Empty means All.
func ValidStatus(status string, options []string) (string, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return StatusAll, nil
	}
	for _, o := range options {
		if strings.EqualFold(o, status) {
			return o, nil
		}
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// FilterByStatus keeps the items whose status equals status. "All" returns
// the list unchanged.
func FilterByStatus[T any](items []T, status string, statusOf func(T) string) []T {
	if status == "" || status == StatusAll {
		return items
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if statusOf(it) == status {
			out = append(out, it)
		}
	}
	return out
}
