package validators

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	signInPhoneRe = regexp.MustCompile(`^\+\d{10,}$`)
	otpRe         = regexp.MustCompile(`^\d{6}$`)
	countryCodeRe = regexp.MustCompile(`^\+\d{1,4}$`)
)

// IsSignInPhone reports whether s is "+" followed by at least ten digits.
func IsSignInPhone(s string) bool {
	return signInPhoneRe.MatchString(s)
}

func IsOTP(s string) bool {
	return otpRe.MatchString(s)
}

func IsCountryCode(s string) bool {
	return countryCodeRe.MatchString(strings.TrimSpace(s))
}

// StripSpace removes every whitespace rune, including the ones in the middle
// that phone inputs like to insert ("+971 50 123 4567").
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
