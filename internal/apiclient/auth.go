package apiclient

import (
	"context"
	"net/http"

	"github.com/exactfit/customer-web/internal/models"
)

type otpRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp,omitempty"`
}

func (c *Client) SendOTP(ctx context.Context, mobile string) error {
	return c.do(ctx, http.MethodPost, "/user/user-auth/V1/send-otp", "send_otp", otpRequest{Mobile: mobile}, nil)
}

func (c *Client) ResendOTP(ctx context.Context, mobile string) error {
	return c.do(ctx, http.MethodPost, "/user/user-auth/V1/resend-otp", "resend_otp", otpRequest{Mobile: mobile}, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, mobile, otp string) (*models.OTPGrant, error) {
	var grant models.OTPGrant
	if err := c.do(ctx, http.MethodPost, "/user/user-auth/V1/verify-otp", "verify_otp", otpRequest{Mobile: mobile, OTP: otp}, &grant); err != nil {
		return nil, err
	}
	if grant.Token == "" {
		return nil, &Error{Kind: KindDecode, Endpoint: "verify_otp", Message: "response carried no token"}
	}
	return &grant, nil
}
