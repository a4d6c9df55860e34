package upstream

import (
	"context"
	"net/url"

	"github.com/concealdc/webgate/internal/model"
)

// Notification endpoints are bearer-authenticated; callers obtain the
// access token from the session gate before calling.

func (c *ConcealClient) ListNotifications(ctx context.Context, token string) ([]model.NotificationPreference, error) {
	var resp struct {
		Items []model.NotificationPreference `json:"items"`
	}
	if err := c.call(ctx, "list_notifications", "GET", "/notifications", nil, token, "failed to fetch notifications", &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *ConcealClient) CreateNotification(ctx context.Context, token string, req *model.CreateNotificationRequest) (*model.NotificationPreference, error) {
	var pref model.NotificationPreference
	if err := c.call(ctx, "create_notification", "POST", "/notifications", req, token, "failed to create notification", &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

func (c *ConcealClient) UpdateNotification(ctx context.Context, token, id string, req *model.UpdateNotificationRequest) (*model.NotificationPreference, error) {
	var pref model.NotificationPreference
	if err := c.call(ctx, "update_notification", "PUT", "/notifications/"+url.PathEscape(id), req, token, "failed to update notification", &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

func (c *ConcealClient) DeleteNotification(ctx context.Context, token, id string) error {
	return c.call(ctx, "delete_notification", "DELETE", "/notifications/"+url.PathEscape(id), nil, token, "failed to delete notification", nil)
}
