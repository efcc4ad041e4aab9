package model

import "github.com/alumnet-lab/backend/pkg/router"

type GetNotificationsRequest struct {
	UnreadOnly bool `form:"unread_only"`
	Offset     int  `form:"offset"`
	Limit      int  `form:"limit"`
}

type GetNotificationsResponse struct {
	router.Page   `json:"-"`
	Notifications []Notification `json:"notifications"`
}

type ReadNotificationRequest struct {
	ID string `uri:"id"`
}

type ReadNotificationResponse struct{}

type ReadAllNotificationsRequest struct{}

type ReadAllNotificationsResponse struct {
	Count int64 `json:"count"`
}
