package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	GetList(ctx context.Context, tenantID string, status entity.JobStatus, offset, limit int) ([]entity.Job, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.JobStatus) error
}

type jobRepository struct{}

func NewJobRepository() *jobRepository {
	return &jobRepository{}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	return xcontext.DB(ctx).Create(job).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	var result entity.Job
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *jobRepository) GetList(
	ctx context.Context, tenantID string, status entity.JobStatus, offset, limit int,
) ([]entity.Job, int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Job{}).Where("tenant_id=?", tenantID)
	if status != "" {
		tx = tx.Where("status=?", status)
	}

	tx = tx.Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []entity.Job
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id string, from, to entity.JobStatus) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.Job{}).
		Where("id=? AND status=?", id, from).
		Update("status", to))
}
