package forms

import (
	"errors"
	"strings"
)

// IncompleteError is returned when a form is submitted before every required
// field is filled.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return "form_incomplete: " + strings.Join(e.Missing, ", ")
}

func AsIncomplete(err error) (*IncompleteError, bool) {
	var ie *IncompleteError
	ok := errors.As(err, &ie)
	return ie, ok
}
