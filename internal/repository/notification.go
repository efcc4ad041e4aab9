package repository

import (
	"context"
	"time"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetList(ctx context.Context, userID string, unreadOnly bool, offset, limit int) ([]entity.Notification, int64, error)
	MarkRead(ctx context.Context, userID, id string, now time.Time) error
	MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error)
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return xcontext.DB(ctx).Create(notification).Error
}

func (r *notificationRepository) GetList(
	ctx context.Context, userID string, unreadOnly bool, offset, limit int,
) ([]entity.Notification, int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Notification{}).Where("user_id=?", userID)
	if unreadOnly {
		tx = tx.Where("read_at IS NULL")
	}

	tx = tx.Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []entity.Notification
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id string, now time.Time) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("id=? AND user_id=? AND read_at IS NULL", id, userID).
		Update("read_at", now))
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string, now time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND read_at IS NULL", userID).
		Update("read_at", now)

	return tx.RowsAffected, tx.Error
}
