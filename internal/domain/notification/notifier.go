package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/pubsub"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
)

type Message struct {
	TenantID string
	UserID   string
	Type     string
	Title    string

	// Data fills the body template of Type and is stored with the
	// notification.
	Data map[string]any
}

// Notifier dispatches notifications on a best-effort basis. Failures are
// logged and counted, never returned to the caller.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

type notifier struct {
	notificationRepo repository.NotificationRepository
	publisher        pubsub.Publisher
}

func NewNotifier(
	notificationRepo repository.NotificationRepository,
	publisher pubsub.Publisher,
) *notifier {
	return &notifier{notificationRepo: notificationRepo, publisher: publisher}
}

func (n *notifier) Notify(ctx context.Context, msg Message) {
	body, err := common.NotificationBody(msg.Type, msg.Data)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot render notification %s: %v", msg.Type, err)
	}

	notification := &entity.Notification{
		Base:     entity.Base{ID: uuid.NewString()},
		TenantID: msg.TenantID,
		UserID:   msg.UserID,
		Type:     msg.Type,
		Title:    msg.Title,
		Body:     body,
		Data:     entity.Map(msg.Data),
	}

	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		n.fail(ctx, msg.Type, "Cannot store notification: %v", err)
		return
	}

	if n.publisher == nil {
		return
	}

	ev := NewEvent(&NotificationEvent{Notification: model.Notification{
		ID:        notification.ID,
		Type:      notification.Type,
		Title:     notification.Title,
		Body:      notification.Body,
		Data:      msg.Data,
		CreatedAt: time.Now(),
	}}, Metadata{To: msg.UserID})

	b, err := json.Marshal(ev)
	if err != nil {
		n.fail(ctx, msg.Type, "Cannot marshal notification event: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Notification.Topic
	if err := n.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(msg.UserID), Msg: b}); err != nil {
		n.fail(ctx, msg.Type, "Cannot publish notification: %v", err)
	}
}

func (n *notifier) fail(ctx context.Context, typ, format string, err error) {
	xcontext.Logger(ctx).Errorf(format, err)
	common.PromCounters[common.NotificationFailureTotal].WithLabelValues(typ).Inc()
}
