package api

import (
	"context"
	"fmt"
	"net/http"

	"classroomclient/internal/domain"
)

func (c *Client) ListNotifications(ctx context.Context, userID int) ([]domain.Notification, error) {
	var raw jsonRaw
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notifications/user/%d", userID), nil, nil, &raw); err != nil {
		return nil, err
	}
	return sniffList[domain.Notification](raw, "notifications")
}

func (c *Client) ListUnreadNotifications(ctx context.Context, userID int) ([]domain.Notification, error) {
	var raw jsonRaw
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notifications/user/%d/unread", userID), nil, nil, &raw); err != nil {
		return nil, err
	}
	return sniffList[domain.Notification](raw, "notifications")
}

// CreateNotification addresses one user. role tags the audience the entry
// was produced for and defaults to "all".
func (c *Client) CreateNotification(ctx context.Context, userID int, title, description, role string) (*domain.Notification, error) {
	if role == "" {
		role = "all"
	}
	body := map[string]any{
		"userId":      userID,
		"title":       title,
		"description": orNil(description),
		"role":        role,
	}
	var notif domain.Notification
	if err := c.do(ctx, http.MethodPost, "/notifications", nil, body, &notif); err != nil {
		return nil, err
	}
	return &notif, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/%d/read", notificationID), nil, nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/user/%d/read-all", userID), nil, nil, nil)
}
