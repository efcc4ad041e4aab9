package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FundRepository interface {
	Create(ctx context.Context, fund *entity.Fund) error
	GetByID(ctx context.Context, id string) (*entity.Fund, error)
	GetList(ctx context.Context, tenantID string, status entity.FundStatus, offset, limit int) ([]entity.Fund, int64, error)
	GetAll(ctx context.Context) ([]entity.Fund, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error

	// RecomputeTotal sets the total raised of the fund to the sum of its
	// campaigns.
	RecomputeTotal(ctx context.Context, id string) error
}

type fundRepository struct{}

func NewFundRepository() *fundRepository {
	return &fundRepository{}
}

func (r *fundRepository) Create(ctx context.Context, fund *entity.Fund) error {
	return xcontext.DB(ctx).Create(fund).Error
}

func (r *fundRepository) GetByID(ctx context.Context, id string) (*entity.Fund, error) {
	var result entity.Fund
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *fundRepository) GetList(
	ctx context.Context, tenantID string, status entity.FundStatus, offset, limit int,
) ([]entity.Fund, int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Fund{})
	if tenantID != "" {
		tx = tx.Where("tenant_id=?", tenantID)
	}

	if status != "" {
		tx = tx.Where("status=?", status)
	}

	tx = tx.Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []entity.Fund
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *fundRepository) GetAll(ctx context.Context) ([]entity.Fund, error) {
	var result []entity.Fund
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *fundRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	return updateOne(xcontext.DB(ctx).Model(&entity.Fund{}).Where("id=?", id).Updates(data))
}

func (r *fundRepository) DeleteByID(ctx context.Context, id string) error {
	return updateOne(xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Fund{}))
}

func (r *fundRepository) RecomputeTotal(ctx context.Context, id string) error {
	sum := xcontext.DB(ctx).Model(&entity.Campaign{}).
		Select("COALESCE(SUM(raised_amount), 0)").
		Where("fund_id=?", id)

	return xcontext.DB(ctx).Model(&entity.Fund{}).
		Where("id=?", id).
		Update("total_raised", sum).Error
}
