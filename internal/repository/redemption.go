package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RedemptionFilter struct {
	TenantID string
	UserID   string
	RewardID string
}

type RedemptionSummary struct {
	Count int64
	Spent uint64
}

type RewardClaimStatistic struct {
	RewardID string
	Claims   int64
	Spent    uint64
}

type RedemptionRepository interface {
	Create(ctx context.Context, redemption *entity.Redemption) error
	GetList(ctx context.Context, filter RedemptionFilter, offset, limit int) ([]entity.Redemption, int64, error)
	Summary(ctx context.Context, userID, tenantID string) (*RedemptionSummary, error)
	ClaimStatistic(ctx context.Context, tenantID string) ([]RewardClaimStatistic, error)
}

type redemptionRepository struct{}

func NewRedemptionRepository() *redemptionRepository {
	return &redemptionRepository{}
}

func (r *redemptionRepository) Create(ctx context.Context, redemption *entity.Redemption) error {
	return xcontext.DB(ctx).Create(redemption).Error
}

func (r *redemptionRepository) GetList(
	ctx context.Context, filter RedemptionFilter, offset, limit int,
) ([]entity.Redemption, int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Redemption{})
	if filter.TenantID != "" {
		tx = tx.Where("tenant_id=?", filter.TenantID)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.RewardID != "" {
		tx = tx.Where("reward_id=?", filter.RewardID)
	}

	tx = tx.Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []entity.Redemption
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *redemptionRepository) Summary(ctx context.Context, userID, tenantID string) (*RedemptionSummary, error) {
	var result RedemptionSummary
	err := xcontext.DB(ctx).Model(&entity.Redemption{}).
		Select("COUNT(*) AS count, COALESCE(SUM(cost), 0) AS spent").
		Where("user_id=? AND tenant_id=?", userID, tenantID).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *redemptionRepository) ClaimStatistic(ctx context.Context, tenantID string) ([]RewardClaimStatistic, error) {
	var result []RewardClaimStatistic
	err := xcontext.DB(ctx).Model(&entity.Redemption{}).
		Select("reward_id, COUNT(*) AS claims, SUM(cost) AS spent").
		Where("tenant_id=?", tenantID).
		Group("reward_id").
		Order("claims DESC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
