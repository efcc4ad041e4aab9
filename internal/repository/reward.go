package repository

import (
	"context"
	"time"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

type RewardFilter struct {
	TenantID        string
	Category        string
	Featured        *bool
	IncludeInactive bool

	// EnforceSchedule hides templates whose [start, end] doesn't contain Now.
	EnforceSchedule bool
	Now             time.Time
}

type RewardRepository interface {
	Create(ctx context.Context, reward *entity.Reward) error
	GetByID(ctx context.Context, id string) (*entity.Reward, error)

	// GetByIDUnscoped also returns deleted rewards.
	GetByIDUnscoped(ctx context.Context, id string) (*entity.Reward, error)
	GetList(ctx context.Context, filter RewardFilter) ([]entity.Reward, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Create(ctx context.Context, reward *entity.Reward) error {
	return xcontext.DB(ctx).Create(reward).Error
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*entity.Reward, error) {
	var result entity.Reward
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardRepository) GetByIDUnscoped(ctx context.Context, id string) (*entity.Reward, error) {
	var result entity.Reward
	if err := xcontext.DB(ctx).Unscoped().Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardRepository) GetList(ctx context.Context, filter RewardFilter) ([]entity.Reward, error) {
	tx := xcontext.DB(ctx).Model(&entity.Reward{}).Order("featured DESC, created_at DESC")

	if filter.TenantID != "" {
		tx = tx.Where("tenant_id=?", filter.TenantID)
	}

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	if filter.Featured != nil {
		tx = tx.Where("featured=?", *filter.Featured)
	}

	if !filter.IncludeInactive {
		tx = tx.Where("active=?", true)
	}

	if filter.EnforceSchedule {
		tx = tx.Where("(start_at IS NULL OR start_at<=?) AND (end_at IS NULL OR end_at>=?)", filter.Now, filter.Now)
	}

	var result []entity.Reward
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	return updateOne(xcontext.DB(ctx).Model(&entity.Reward{}).Where("id=?", id).Updates(data))
}

func (r *rewardRepository) DeleteByID(ctx context.Context, id string) error {
	return updateOne(xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Reward{}))
}
