package domain

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/ws"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

type NotificationDomain interface {
	GetList(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	Read(context.Context, *model.ReadNotificationRequest) (*model.ReadNotificationResponse, error)
	ReadAll(context.Context, *model.ReadAllNotificationsRequest) (*model.ReadAllNotificationsResponse, error)

	// Stream upgrades the request to a websocket which receives the
	// notifications of the requesting user.
	Stream(ctx context.Context, w http.ResponseWriter, r *http.Request)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
	hub              *ws.Hub
	upgrader         websocket.Upgrader
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository, hub *ws.Hub) NotificationDomain {
	return &notificationDomain{
		notificationRepo: notificationRepo,
		hub:              hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	notifications, total, err := d.notificationRepo.GetList(
		ctx, xcontext.RequestUserID(ctx), req.UnreadOnly, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Notification{}
	for i := range notifications {
		result = append(result, convertNotification(&notifications[i]))
	}

	return &model.GetNotificationsResponse{
		Page:          router.NewPage(offset, limit, total),
		Notifications: result,
	}, nil
}

func (d *notificationDomain) Read(
	ctx context.Context, req *model.ReadNotificationRequest,
) (*model.ReadNotificationResponse, error) {
	err := d.notificationRepo.MarkRead(ctx, xcontext.RequestUserID(ctx), req.ID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found unread notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReadNotificationResponse{}, nil
}

func (d *notificationDomain) ReadAll(
	ctx context.Context, req *model.ReadAllNotificationsRequest,
) (*model.ReadAllNotificationsResponse, error) {
	count, err := d.notificationRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx), time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark all notifications as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReadAllNotificationsResponse{Count: count}, nil
}

func (d *notificationDomain) Stream(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		http.Error(w, "User is not valid", http.StatusUnauthorized)
		return
	}

	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot upgrade websocket: %v", err)
		return
	}

	client := ws.NewClient(uuid.NewString(), userID, conn, false)
	d.hub.Register(client)
	defer d.hub.Unregister(client)

	// Clients only listen, incoming messages are drained until the
	// connection is closed.
	for range client.R {
	}
}
