package signin

import (
	"context"

	"github.com/exactfit/customer-web/internal/models"
)

// Gateway is the backend side of OTP sign-in.
type Gateway interface {
	SendOTP(ctx context.Context, mobile string) error
	ResendOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, otp string) (*models.OTPGrant, error)
}
