package dto

import "github.com/rafael/coursehub/internal/app/models"

// NotificationListResponse is the notification list view. Fetching it marks
// every previously-unread notification of the caller as read; UnreadCount
// reports how many were unread at the moment of the request.
type NotificationListResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

// UnreadCountResponse is the standalone unread counter
type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}
