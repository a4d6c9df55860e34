package auth

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/internal/session"
	"github.com/concealdc/webgate/pkg/errors"
	"github.com/concealdc/webgate/pkg/httputil"
)

// OTPService is the upstream slice the login flow needs.
type OTPService interface {
	RequestOTP(ctx context.Context, email string) (*model.RequestOTPResponse, error)
	VerifyOTP(ctx context.Context, otpID, otpCode string) (*model.TokenPair, error)
}

type Handler struct {
	svc     OTPService
	session *session.Session
}

func NewHandler(svc OTPService, sess *session.Session) *Handler {
	return &Handler{svc: svc, session: sess}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/otp", h.RequestOTP)
		auth.POST("/verify", h.VerifyOTP)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/status", h.Status)
	}
}

func (h *Handler) RequestOTP(c *gin.Context) {
	var req model.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	resp, err := h.svc.RequestOTP(c.Request.Context(), req.Email)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, resp)
}

// VerifyOTP trades a one-time code for a token pair and persists it so
// subsequent authenticated requests pass the refresh gate.
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req model.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	pair, err := h.svc.VerifyOTP(c.Request.Context(), req.OTPID, req.OTPCode)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.session.SetTokens(pair); err != nil {
		httputil.RespondWithError(c, errors.Internal(err))
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"email": h.session.Email()})
}

func (h *Handler) Refresh(c *gin.Context) {
	if !h.session.EnsureValid(c.Request.Context()) {
		httputil.RespondWithError(c, errors.Unauthenticated())
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"email": h.session.Email()})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.session.Clear(); err != nil {
		httputil.RespondWithError(c, errors.Internal(err))
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"loggedOut": true})
}

func (h *Handler) Status(c *gin.Context) {
	if !h.session.EnsureValid(c.Request.Context()) {
		httputil.RespondWithSuccess(c, gin.H{"authenticated": false})
		return
	}

	httputil.RespondWithSuccess(c, gin.H{
		"authenticated": true,
		"email":         h.session.Email(),
	})
}
