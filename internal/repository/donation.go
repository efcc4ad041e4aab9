package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

type DonationRepository interface {
	Create(ctx context.Context, donation *entity.Donation) error
	GetByCampaignID(ctx context.Context, campaignID string, offset, limit int) ([]entity.Donation, error)
}

type donationRepository struct{}

func NewDonationRepository() *donationRepository {
	return &donationRepository{}
}

func (r *donationRepository) Create(ctx context.Context, donation *entity.Donation) error {
	return xcontext.DB(ctx).Create(donation).Error
}

func (r *donationRepository) GetByCampaignID(
	ctx context.Context, campaignID string, offset, limit int,
) ([]entity.Donation, error) {
	var result []entity.Donation
	err := xcontext.DB(ctx).
		Where("campaign_id=?", campaignID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
