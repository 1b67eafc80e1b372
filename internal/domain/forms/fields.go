package forms

import (
	"strings"

	"github.com/exactfit/customer-web/internal/validators"
)

const DefaultCountryCode = "+971"

// FormatMobile joins country code and number and drops all whitespace. A
// number that already starts with "+" is sent as it is.
func FormatMobile(countryCode, mobile string) string {
	if international(mobile) {
		return validators.StripSpace(mobile)
	}
	if strings.TrimSpace(countryCode) == "" {
		countryCode = DefaultCountryCode
	}
	return validators.StripSpace(countryCode + mobile)
}

func international(mobile string) bool {
	return strings.HasPrefix(strings.TrimSpace(mobile), "+")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// required collects the names of the blank fields, in form order.
type required []string

func (r *required) check(name, value string) {
	if blank(value) {
		*r = append(*r, name)
	}
}
