package repository

import (
	"context"
	"time"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ActivityFilter struct {
	TenantID string
	UserID   string
	RewardID string
	Status   []entity.ActivityStatus
}

type ActivityStatusCount struct {
	Status entity.ActivityStatus
	Count  int64
	Amount int64
}

type UserStatistic struct {
	UserID string
	Points uint64
	Tasks  uint64
}

type TaskCompletion struct {
	RewardID string
	TaskID   string
	Approved int64
	Pending  int64
	Rejected int64
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.UserTaskActivity) error
	GetByID(ctx context.Context, id string) (*entity.UserTaskActivity, error)
	Get(ctx context.Context, userID, rewardID, taskID string) (*entity.UserTaskActivity, error)
	GetList(ctx context.Context, filter ActivityFilter, offset, limit int) ([]entity.UserTaskActivity, int64, error)

	// IncreaseAmount adds amount atomically if the activity is still in
	// progress.
	IncreaseAmount(ctx context.Context, id string, amount int64) error

	// UpdateStatus changes the status only if the current status is from. It
	// returns gorm.ErrRecordNotFound otherwise.
	UpdateStatus(ctx context.Context, id string, from entity.ActivityStatus, data map[string]any) error

	CountByStatus(ctx context.Context, userID, tenantID string) ([]ActivityStatusCount, error)
	Statistic(ctx context.Context, tenantID string, start, end time.Time) ([]UserStatistic, error)
	TaskCompletion(ctx context.Context, tenantID string) ([]TaskCompletion, error)
}

type activityRepository struct{}

func NewActivityRepository() *activityRepository {
	return &activityRepository{}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.UserTaskActivity) error {
	return xcontext.DB(ctx).Create(activity).Error
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*entity.UserTaskActivity, error) {
	var result entity.UserTaskActivity
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *activityRepository) Get(
	ctx context.Context, userID, rewardID, taskID string,
) (*entity.UserTaskActivity, error) {
	var result entity.UserTaskActivity
	err := xcontext.DB(ctx).
		Where("user_id=? AND reward_id=? AND task_id=?", userID, rewardID, taskID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *activityRepository) GetList(
	ctx context.Context, filter ActivityFilter, offset, limit int,
) ([]entity.UserTaskActivity, int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.UserTaskActivity{})
	if filter.TenantID != "" {
		tx = tx.Where("tenant_id=?", filter.TenantID)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.RewardID != "" {
		tx = tx.Where("reward_id=?", filter.RewardID)
	}

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	tx = tx.Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []entity.UserTaskActivity
	if err := tx.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *activityRepository) IncreaseAmount(ctx context.Context, id string, amount int64) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.UserTaskActivity{}).
		Where("id=? AND status=?", id, entity.ActivityInProgress).
		Update("amount", gorm.Expr("amount+?", amount)))
}

func (r *activityRepository) UpdateStatus(
	ctx context.Context, id string, from entity.ActivityStatus, data map[string]any,
) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.UserTaskActivity{}).
		Where("id=? AND status=?", id, from).
		Updates(data))
}

func (r *activityRepository) CountByStatus(
	ctx context.Context, userID, tenantID string,
) ([]ActivityStatusCount, error) {
	var result []ActivityStatusCount
	err := xcontext.DB(ctx).Model(&entity.UserTaskActivity{}).
		Select("status, COUNT(*) AS count, SUM(amount) AS amount").
		Where("user_id=? AND tenant_id=?", userID, tenantID).
		Group("status").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Statistic sums the awarded points and verified tasks of every user whose
// activities were approved in [start, end).
func (r *activityRepository) Statistic(
	ctx context.Context, tenantID string, start, end time.Time,
) ([]UserStatistic, error) {
	var result []UserStatistic
	err := xcontext.DB(ctx).Model(&entity.UserTaskActivity{}).
		Select("user_id, SUM(points) AS points, COUNT(*) AS tasks").
		Where("tenant_id=? AND status IN (?)", tenantID,
			[]entity.ActivityStatus{entity.ActivityApproved, entity.ActivityClaimed}).
		Where("verified_at>=? AND verified_at<?", start, end).
		Group("user_id").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityRepository) TaskCompletion(ctx context.Context, tenantID string) ([]TaskCompletion, error) {
	var result []TaskCompletion
	err := xcontext.DB(ctx).Model(&entity.UserTaskActivity{}).
		Select("reward_id, task_id, "+
			"SUM(CASE WHEN status IN (?) THEN 1 ELSE 0 END) AS approved, "+
			"SUM(CASE WHEN status=? THEN 1 ELSE 0 END) AS pending, "+
			"SUM(CASE WHEN status=? THEN 1 ELSE 0 END) AS rejected",
			[]entity.ActivityStatus{entity.ActivityApproved, entity.ActivityClaimed},
			entity.ActivityPendingVerification,
			entity.ActivityRejected).
		Where("tenant_id=?", tenantID).
		Group("reward_id, task_id").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
