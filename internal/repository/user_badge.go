package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

type UserBadgeRepository interface {
	Create(ctx context.Context, userBadge *entity.UserBadge) error
	Get(ctx context.Context, userID, badgeID string) (*entity.UserBadge, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.UserBadge, error)
	Delete(ctx context.Context, userBadge *entity.UserBadge) error
}

type userBadgeRepository struct{}

func NewUserBadgeRepository() *userBadgeRepository {
	return &userBadgeRepository{}
}

func (r *userBadgeRepository) Create(ctx context.Context, userBadge *entity.UserBadge) error {
	return xcontext.DB(ctx).Create(userBadge).Error
}

func (r *userBadgeRepository) Get(ctx context.Context, userID, badgeID string) (*entity.UserBadge, error) {
	var result entity.UserBadge
	err := xcontext.DB(ctx).Where("user_id=? AND badge_id=?", userID, badgeID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userBadgeRepository) GetByUserID(ctx context.Context, userID string) ([]entity.UserBadge, error) {
	var result []entity.UserBadge
	err := xcontext.DB(ctx).Where("user_id=?", userID).Order("awarded_at DESC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes the row and, through the model hook, decrements the
// recipients counter of its badge.
func (r *userBadgeRepository) Delete(ctx context.Context, userBadge *entity.UserBadge) error {
	return updateOne(xcontext.DB(ctx).Delete(userBadge))
}
