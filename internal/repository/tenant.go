package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Tenant, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Tenant, int64, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
}

type tenantRepository struct{}

func NewTenantRepository() *tenantRepository {
	return &tenantRepository{}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	return xcontext.DB(ctx).Create(tenant).Error
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	var result entity.Tenant
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *tenantRepository) GetByHandle(ctx context.Context, handle string) (*entity.Tenant, error) {
	var result entity.Tenant
	if err := xcontext.DB(ctx).Take(&result, "handle=?", handle).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *tenantRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Tenant, int64, error) {
	var total int64
	if err := xcontext.DB(ctx).Model(&entity.Tenant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []entity.Tenant
	err := xcontext.DB(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error
	if err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *tenantRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	return updateOne(xcontext.DB(ctx).Model(&entity.Tenant{}).Where("id=?", id).Updates(data))
}
