package model

// TokenPair is the credential set handed out by OTP verification. The
// access token is a JWT carrying exp and sub (email); the refresh token
// is opaque.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RequestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RequestOTPResponse struct {
	OTPID string `json:"otpId"`
}

type VerifyOTPRequest struct {
	OTPID   string `json:"otpId" binding:"required"`
	OTPCode string `json:"otpCode" binding:"required"`
}
