package notification

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/concealdc/webgate/internal/middleware"
	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/pkg/errors"
	"github.com/concealdc/webgate/pkg/httputil"
)

// Service is the upstream slice the notification endpoints need. Every
// call carries the caller's access token.
type Service interface {
	ListNotifications(ctx context.Context, token string) ([]model.NotificationPreference, error)
	CreateNotification(ctx context.Context, token string, req *model.CreateNotificationRequest) (*model.NotificationPreference, error)
	UpdateNotification(ctx context.Context, token, id string, req *model.UpdateNotificationRequest) (*model.NotificationPreference, error)
	DeleteNotification(ctx context.Context, token, id string) error
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, gate gin.HandlerFunc) {
	notifications := r.Group("/notifications", gate)
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("", h.CreateNotification)
		notifications.PUT("/:id", h.UpdateNotification)
		notifications.DELETE("/:id", h.DeleteNotification)
	}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	prefs, err := h.svc.ListNotifications(c.Request.Context(), c.GetString(middleware.ContextAccessToken))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, prefs)
}

func (h *Handler) CreateNotification(c *gin.Context) {
	var req model.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	pref, err := h.svc.CreateNotification(c.Request.Context(), c.GetString(middleware.ContextAccessToken), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, pref)
}

func (h *Handler) UpdateNotification(c *gin.Context) {
	var req model.UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	pref, err := h.svc.UpdateNotification(c.Request.Context(), c.GetString(middleware.ContextAccessToken), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, pref)
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	err := h.svc.DeleteNotification(c.Request.Context(), c.GetString(middleware.ContextAccessToken), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}
