package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

type BadgeFilter struct {
	// TenantID returns badges of the tenant and global badges. Empty means
	// every badge.
	TenantID     string
	CriteriaType entity.BadgeCriteriaType
	OnlyActive   bool
}

type BadgeRepository interface {
	Create(ctx context.Context, badge *entity.Badge) error
	GetByID(ctx context.Context, id string) (*entity.Badge, error)
	GetByName(ctx context.Context, name string) (*entity.Badge, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Badge, error)
	GetList(ctx context.Context, filter BadgeFilter) ([]entity.Badge, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error
}

type badgeRepository struct{}

func NewBadgeRepository() *badgeRepository {
	return &badgeRepository{}
}

func (r *badgeRepository) Create(ctx context.Context, badge *entity.Badge) error {
	return xcontext.DB(ctx).Create(badge).Error
}

func (r *badgeRepository) GetByID(ctx context.Context, id string) (*entity.Badge, error) {
	var result entity.Badge
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *badgeRepository) GetByName(ctx context.Context, name string) (*entity.Badge, error) {
	var result entity.Badge
	// Deleted badges still hold their unique name.
	if err := xcontext.DB(ctx).Unscoped().Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *badgeRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Badge, error) {
	var result []entity.Badge
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) GetList(ctx context.Context, filter BadgeFilter) ([]entity.Badge, error) {
	tx := xcontext.DB(ctx).Model(&entity.Badge{})
	if filter.TenantID != "" {
		tx = tx.Where("(tenant_id=? OR tenant_id IS NULL)", filter.TenantID)
	}

	if filter.CriteriaType != "" {
		tx = tx.Where("criteria_type=?", filter.CriteriaType)
	}

	if filter.OnlyActive {
		tx = tx.Where("active=?", true)
	}

	var result []entity.Badge
	if err := tx.Order("criteria_value ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	return updateOne(xcontext.DB(ctx).Model(&entity.Badge{}).Where("id=?", id).Updates(data))
}

func (r *badgeRepository) DeleteByID(ctx context.Context, id string) error {
	return updateOne(xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Badge{}))
}
