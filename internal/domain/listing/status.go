package listing

import (
	"strings"
	"unicode"

	"github.com/exactfit/customer-web/internal/models"
)

// NormalizeSubscriptionStatus folds the backend's status spellings into the
// three the dashboard shows.
func NormalizeSubscriptionStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "active":
		return string(models.SubscriptionActive)
	case "pending", "inactive", "awaiting":
		return string(models.SubscriptionPending)
	case "completed", "complete", "expired", "ended":
		return string(models.SubscriptionCompleted)
	}
	return titleCase(s)
}

// NormalizeStatus title-cases a booking or ticket status ("in progress" →
// "In Progress") so it can be compared with the filter options.
func NormalizeStatus(raw string) string {
	return titleCase(strings.ToLower(strings.TrimSpace(raw)))
}

func titleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
