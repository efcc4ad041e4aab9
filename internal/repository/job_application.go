package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type JobApplicationRepository interface {
	Create(ctx context.Context, application *entity.JobApplication) error
	GetByID(ctx context.Context, id string) (*entity.JobApplication, error)
	Get(ctx context.Context, jobID, applicantID string) (*entity.JobApplication, error)
	GetListByJobID(ctx context.Context, jobID string, status entity.JobApplicationStatus, offset, limit int) ([]entity.JobApplication, int64, error)
	GetListByApplicantID(ctx context.Context, applicantID string) ([]entity.JobApplication, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
}

type jobApplicationRepository struct{}

func NewJobApplicationRepository() *jobApplicationRepository {
	return &jobApplicationRepository{}
}

func (r *jobApplicationRepository) Create(ctx context.Context, application *entity.JobApplication) error {
	return xcontext.DB(ctx).Create(application).Error
}

func (r *jobApplicationRepository) GetByID(ctx context.Context, id string) (*entity.JobApplication, error) {
	var result entity.JobApplication
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *jobApplicationRepository) Get(ctx context.Context, jobID, applicantID string) (*entity.JobApplication, error) {
	var result entity.JobApplication
	err := xcontext.DB(ctx).
		Where("job_id=? AND applicant_id=?", jobID, applicantID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *jobApplicationRepository) GetListByJobID(
	ctx context.Context, jobID string, status entity.JobApplicationStatus, offset, limit int,
) ([]entity.JobApplication, int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.JobApplication{}).Where("job_id=?", jobID)
	if status != "" {
		tx = tx.Where("status=?", status)
	}

	tx = tx.Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []entity.JobApplication
	if err := tx.Order("created_at ASC").Offset(offset).Limit(limit).Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *jobApplicationRepository) GetListByApplicantID(
	ctx context.Context, applicantID string,
) ([]entity.JobApplication, error) {
	var result []entity.JobApplication
	err := xcontext.DB(ctx).
		Where("applicant_id=?", applicantID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *jobApplicationRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	return updateOne(xcontext.DB(ctx).Model(&entity.JobApplication{}).Where("id=?", id).Updates(data))
}
