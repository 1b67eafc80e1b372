package signin

import (
	"math"
	"strings"
	"time"

	"github.com/exactfit/customer-web/internal/httperr"
	"github.com/exactfit/customer-web/internal/validators"
)

// ===============================
// Stages
// ===============================

type Stage string

const (
	StagePhone Stage = "phone"
	StageOTP   Stage = "otp"
	StageDone  Stage = "done"
)

const (
	PathHome         = "/"
	PathProfileSetup = "/profile-setup"
)

// Flow is one visitor's progress through phone sign-in.
type Flow struct {
	Stage  Stage     `json:"stage"`
	Phone  string    `json:"phone,omitempty"`
	SentAt time.Time `json:"sent_at,omitempty"`
	Boxes  OTPBoxes  `json:"boxes"`
}

func NewFlow() *Flow {
	return &Flow{Stage: StagePhone}
}

func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// CanContinue gates the "Continue" control on the phone step.
func CanContinue(phone string) bool {
	return validators.IsSignInPhone(NormalizePhone(phone))
}

// ===============================
// Transitions
// ===============================

// StartOTP moves phone → otp (or restarts otp with a new number) and starts
// the resend countdown.
func (f *Flow) StartOTP(phone string, now time.Time) error {
	phone = NormalizePhone(phone)
	if !validators.IsSignInPhone(phone) {
		return httperr.ErrBusiness("invalid_phone")
	}
	if f.Stage == StageDone {
		return httperr.ErrBusiness("invalid_state")
	}

	f.Stage = StageOTP
	f.Phone = phone
	f.SentAt = now
	f.Boxes = OTPBoxes{}
	return nil
}

func (f *Flow) SecondsLeft(now time.Time, window time.Duration) int {
	if f.Stage != StageOTP {
		return 0
	}
	left := f.SentAt.Add(window).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

// CanResend is true once the countdown has reached zero.
func (f *Flow) CanResend(now time.Time, window time.Duration) bool {
	return f.Stage == StageOTP && f.SecondsLeft(now, window) == 0
}

// Resend resets the countdown. It refuses while the countdown is running.
func (f *Flow) Resend(now time.Time, window time.Duration) error {
	if f.Stage != StageOTP {
		return httperr.ErrBusiness("invalid_state")
	}
	if !f.CanResend(now, window) {
		return httperr.ErrBusiness("resend_not_allowed")
	}
	f.SentAt = now
	f.Boxes = OTPBoxes{}
	return nil
}

// CheckCode returns the code to verify: code when given, otherwise the digits
// typed into the boxes.
func (f *Flow) CheckCode(code string) (string, error) {
	if f.Stage != StageOTP {
		return "", httperr.ErrBusiness("invalid_state")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		code = f.Boxes.Code()
	}
	if !validators.IsOTP(code) {
		return "", httperr.ErrBusiness("invalid_otp")
	}
	return code, nil
}

func (f *Flow) Complete() {
	f.Stage = StageDone
	f.Boxes = OTPBoxes{}
}

// NextPath is where the user lands after a successful verification.
func NextPath(isProfileUpdate bool) string {
	if isProfileUpdate {
		return PathHome
	}
	return PathProfileSetup
}
