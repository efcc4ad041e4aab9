package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	GetByID(ctx context.Context, id string) (*entity.Campaign, error)
	GetByFundID(ctx context.Context, fundID string) ([]entity.Campaign, error)
	IncreaseRaised(ctx context.Context, id string, amount int64) error
}

type campaignRepository struct{}

func NewCampaignRepository() *campaignRepository {
	return &campaignRepository{}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	return xcontext.DB(ctx).Create(campaign).Error
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*entity.Campaign, error) {
	var result entity.Campaign
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *campaignRepository) GetByFundID(ctx context.Context, fundID string) ([]entity.Campaign, error) {
	var result []entity.Campaign
	if err := xcontext.DB(ctx).Where("fund_id=?", fundID).Order("created_at ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *campaignRepository) IncreaseRaised(ctx context.Context, id string, amount int64) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.Campaign{}).
		Where("id=? AND status=?", id, entity.CampaignActive).
		Update("raised_amount", gorm.Expr("raised_amount+?", amount)))
}
