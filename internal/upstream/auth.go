package upstream

import (
	"context"

	"github.com/concealdc/webgate/internal/model"
)

// RequestOTP starts an email login and returns the provider's OTP id.
func (c *ConcealClient) RequestOTP(ctx context.Context, email string) (*model.RequestOTPResponse, error) {
	body := map[string]interface{}{"email": email}
	var resp model.RequestOTPResponse
	if err := c.call(ctx, "request_otp", "POST", "/auth/request-otp", body, "", "failed to request code", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOTP exchanges a one-time code for a token pair.
func (c *ConcealClient) VerifyOTP(ctx context.Context, otpID, otpCode string) (*model.TokenPair, error) {
	body := map[string]interface{}{
		"otpId":   otpID,
		"otpCode": otpCode,
	}
	var pair model.TokenPair
	if err := c.call(ctx, "verify_otp", "POST", "/auth/verify-otp", body, "", "failed to verify code", &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// RefreshToken trades a refresh token for a fresh pair. Any failure is
// surfaced to the session layer, which treats it as logged-out.
func (c *ConcealClient) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	body := map[string]interface{}{"refreshToken": refreshToken}
	var pair model.TokenPair
	if err := c.call(ctx, "refresh_token", "POST", "/auth/refresh-token", body, "", "failed to refresh token", &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
