package forms

import (
	"strings"

	"github.com/exactfit/customer-web/internal/models"
	"github.com/exactfit/customer-web/internal/validators"
)

// splitMobile separates a stored "+971501234567" into the country code
// picker value and the local number. Other numbers are kept whole with no
// code, since FormatMobile sends a "+" number as it is.
func splitMobile(mobile string) (string, string) {
	mobile = validators.StripSpace(mobile)
	if strings.HasPrefix(mobile, DefaultCountryCode) {
		return DefaultCountryCode, strings.TrimPrefix(mobile, DefaultCountryCode)
	}
	if strings.HasPrefix(mobile, "+") {
		return "", mobile
	}
	return DefaultCountryCode, mobile
}

// defaultCountryCode fills the picker unless the number carries its own code.
func defaultCountryCode(countryCode, mobile string) string {
	if countryCode == "" && !international(mobile) {
		return DefaultCountryCode
	}
	return countryCode
}

// Prefill copies the contact details of u into the blank fields.
func (f *EnquiryForm) Prefill(u models.User) {
	if blank(f.FullName) {
		f.FullName = u.FullName
	}
	if blank(f.Email) {
		f.Email = u.Email
	}
	if blank(f.Mobile) && u.Mobile != "" {
		f.CountryCode, f.Mobile = splitMobile(u.Mobile)
	}
	f.CountryCode = defaultCountryCode(f.CountryCode, f.Mobile)
}

func (f *EmergencyForm) Prefill(u models.User) {
	if blank(f.FullName) {
		f.FullName = u.FullName
	}
	if blank(f.Email) {
		f.Email = u.Email
	}
	if blank(f.Mobile) && u.Mobile != "" {
		f.CountryCode, f.Mobile = splitMobile(u.Mobile)
	}
	f.CountryCode = defaultCountryCode(f.CountryCode, f.Mobile)
}

// FindAddress looks up id among the user's saved addresses.
func FindAddress(addresses []models.Address, id string) (models.Address, bool) {
	for _, a := range addresses {
		if a.ID == id {
			return a, true
		}
	}
	return models.Address{}, false
}

func FindService(services []models.Service, id string) (models.Service, bool) {
	for _, s := range services {
		if s.ID == id || (s.Slug != "" && s.Slug == id) {
			return s, true
		}
	}
	return models.Service{}, false
}
