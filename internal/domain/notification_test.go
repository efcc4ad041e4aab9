package domain

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/domain/notification"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/ws"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func Test_notificationDomain(t *testing.T) {
	s := newSuite(t)
	notificationRepo := repository.NewNotificationRepository()
	notifier := notification.NewNotifier(notificationRepo, s.publisher)
	d := NewNotificationDomain(notificationRepo, ws.NewHub())

	for _, reward := range []string{"Campus tour", "Mentoring"} {
		notifier.Notify(s.ctx, notification.Message{
			TenantID: s.tenant.ID,
			UserID:   s.alumni.ID,
			Type:     common.NotificationRewardClaimed,
			Title:    "Reward claimed",
			Data:     map[string]any{"Reward": reward, "VoucherCode": "V-1"},
		})
	}
	notifier.Notify(s.ctx, notification.Message{
		TenantID: s.tenant.ID,
		UserID:   s.staff.ID,
		Type:     common.NotificationBadgeAwarded,
		Title:    "New badge",
		Data:     map[string]any{"Badge": "Helper"},
	})

	// Every notification is also published for the websocket fan out.
	require.Len(t, s.publisher.Sent(), 3)
	require.Equal(t, "notification", s.publisher.Sent()[0].Topic)

	list, err := d.GetList(s.as(s.alumni), &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)
	require.Contains(t, list.Notifications[0].Body, "V-1")

	_, err = d.Read(s.as(s.staff), &model.ReadNotificationRequest{ID: list.Notifications[0].ID})
	requireErrorCode(t, err, errorx.NotFound)

	_, err = d.Read(s.as(s.alumni), &model.ReadNotificationRequest{ID: list.Notifications[0].ID})
	require.NoError(t, err)

	_, err = d.Read(s.as(s.alumni), &model.ReadNotificationRequest{ID: list.Notifications[0].ID})
	requireErrorCode(t, err, errorx.NotFound)

	unread, err := d.GetList(s.as(s.alumni), &model.GetNotificationsRequest{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 1)

	readAll, err := d.ReadAll(s.as(s.alumni), &model.ReadAllNotificationsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), readAll.Count)

	unread, err = d.GetList(s.as(s.alumni), &model.GetNotificationsRequest{UnreadOnly: true})
	require.NoError(t, err)
	require.Empty(t, unread.Notifications)
}

func Test_notificationDomain_Stream(t *testing.T) {
	s := newSuite(t)
	hub := ws.NewHub()
	d := NewNotificationDomain(repository.NewNotificationRepository(), hub)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.Stream(s.as(s.alumni), w, r)
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Online(s.alumni.ID) }, time.Second, 10*time.Millisecond)
	require.Equal(t, 1, hub.SendToUser(s.alumni.ID, []byte(`{"o":"notification"}`)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, `{"o":"notification"}`, string(msg))

	conn.Close()
	require.Eventually(t, func() bool { return !hub.Online(s.alumni.ID) }, time.Second, 10*time.Millisecond)
}
