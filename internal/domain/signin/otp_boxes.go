package signin

import (
	"strings"

	"github.com/exactfit/customer-web/internal/httperr"
)

const OTPLength = 6

// OTPBoxes models the six single-digit inputs of the OTP step.
type OTPBoxes [OTPLength]string

// Input writes into box i and returns the box that should take focus next.
// Only the last digit typed is kept; anything else clears the box and
// leaves focus where it is.
func (b *OTPBoxes) Input(i int, s string) (int, error) {
	if i < 0 || i >= OTPLength {
		return 0, httperr.ErrBusiness("invalid_box")
	}

	digit := lastDigit(s)
	if digit == "" {
		b[i] = ""
		return i, nil
	}

	b[i] = digit
	if i < OTPLength-1 {
		return i + 1, nil
	}
	return i, nil
}

// Backspace clears box i and moves focus one box back.
func (b *OTPBoxes) Backspace(i int) (int, error) {
	if i < 0 || i >= OTPLength {
		return 0, httperr.ErrBusiness("invalid_box")
	}

	b[i] = ""
	if i > 0 {
		return i - 1, nil
	}
	return 0, nil
}

// Paste spreads the digits of s over the boxes from the first one.
func (b *OTPBoxes) Paste(s string) int {
	*b = OTPBoxes{}
	n := 0
	for _, r := range s {
		if n == OTPLength {
			break
		}
		if r >= '0' && r <= '9' {
			b[n] = string(r)
			n++
		}
	}
	if n >= OTPLength {
		return OTPLength - 1
	}
	return n
}

func (b OTPBoxes) Code() string {
	return strings.Join(b[:], "")
}

// Complete enables the "Login" control.
func (b OTPBoxes) Complete() bool {
	for _, d := range b {
		if d == "" {
			return false
		}
	}
	return true
}

func lastDigit(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] >= '0' && s[i] <= '9' {
			return s[i : i+1]
		}
	}
	return ""
}
