package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/dateutil"
	"github.com/alumnet-lab/backend/pkg/enum"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type ActivityDomain interface {
	RecordProgress(context.Context, *model.RecordProgressRequest) (*model.RecordProgressResponse, error)
	GetMyRewardActivities(context.Context, *model.GetMyRewardActivitiesRequest) (*model.GetMyRewardActivitiesResponse, error)
	GetMyActivities(context.Context, *model.GetMyActivitiesRequest) (*model.GetMyActivitiesResponse, error)
	Resubmit(context.Context, *model.ResubmitTaskRequest) (*model.ResubmitTaskResponse, error)
}

type activityDomain struct {
	activityRepo repository.ActivityRepository
	rewardRepo   repository.RewardRepository
	approver     *TaskApprover
}

func NewActivityDomain(
	activityRepo repository.ActivityRepository,
	rewardRepo repository.RewardRepository,
	approver *TaskApprover,
) ActivityDomain {
	return &activityDomain{
		activityRepo: activityRepo,
		rewardRepo:   rewardRepo,
		approver:     approver,
	}
}

func (d *activityDomain) RecordProgress(
	ctx context.Context, req *model.RecordProgressRequest,
) (*model.RecordProgressResponse, error) {
	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	reward, err := getTenantReward(ctx, d.rewardRepo, req.RewardID)
	if err != nil {
		return nil, err
	}

	if !reward.Active {
		return nil, errorx.New(errorx.BadRequest, "Reward is inactive")
	}

	if !dateutil.InWindow(time.Now(), nullTimeToPtr(reward.StartAt), nullTimeToPtr(reward.EndAt)) {
		return nil, errorx.New(errorx.BadRequest, "Reward is not available at this time")
	}

	task, ok := reward.FindTask(req.TaskID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found task")
	}

	role := xcontext.RequestRole(ctx)
	if slices.Contains(xcontext.Configs(ctx).Reward.BlockedRoles, role) {
		return nil, errorx.New(errorx.PermissionDenied, "Role %s cannot participate in rewards", role)
	}

	userID := xcontext.RequestUserID(ctx)
	activity, err := d.getOrCreateActivity(ctx, userID, reward, task)
	if err != nil {
		return nil, err
	}

	if err := checkProgressable(activity); err != nil {
		return nil, err
	}

	if err := d.activityRepo.IncreaseAmount(ctx, activity.ID, req.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The activity left in_progress concurrently.
			return nil, errorx.New(errorx.BadRequest, "Task is not in progress anymore")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase amount of activity: %v", err)
		return nil, errorx.Unknown
	}

	activity, err = d.activityRepo.GetByID(ctx, activity.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	if activity.Amount >= task.Target && activity.Status == entity.ActivityInProgress {
		activity, err = d.complete(ctx, activity, reward, task)
		if err != nil {
			return nil, err
		}
	}

	return &model.RecordProgressResponse{Activity: convertActivity(activity)}, nil
}

func (d *activityDomain) GetMyRewardActivities(
	ctx context.Context, req *model.GetMyRewardActivitiesRequest,
) (*model.GetMyRewardActivitiesResponse, error) {
	reward, err := getTenantReward(ctx, d.rewardRepo, req.RewardID)
	if err != nil {
		return nil, err
	}

	activities, _, err := d.activityRepo.GetList(ctx, repository.ActivityFilter{
		UserID:   xcontext.RequestUserID(ctx),
		RewardID: reward.ID,
	}, 0, allRows)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activities of reward: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyRewardActivitiesResponse{Activities: convertActivities(activities)}, nil
}

func (d *activityDomain) GetMyActivities(
	ctx context.Context, req *model.GetMyActivitiesRequest,
) (*model.GetMyActivitiesResponse, error) {
	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.ActivityFilter{
		TenantID: xcontext.RequestTenantID(ctx),
		UserID:   xcontext.RequestUserID(ctx),
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.ActivityStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status")
		}
		filter.Status = []entity.ActivityStatus{status}
	}

	activities, total, err := d.activityRepo.GetList(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activities: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyActivitiesResponse{
		Page:       router.NewPage(offset, limit, total),
		Activities: convertActivities(activities),
	}, nil
}

func (d *activityDomain) Resubmit(
	ctx context.Context, req *model.ResubmitTaskRequest,
) (*model.ResubmitTaskResponse, error) {
	activity, err := d.activityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	if activity.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner can resubmit the task")
	}

	if activity.Status != entity.ActivityRejected {
		return nil, errorx.New(errorx.BadRequest, "Only rejected tasks can be resubmitted")
	}

	err = d.activityRepo.UpdateStatus(ctx, activity.ID, entity.ActivityRejected, map[string]any{
		"status":       entity.ActivityPendingVerification,
		"verifier_id":  sql.NullString{},
		"verified_at":  sql.NullTime{},
		"reason":       "",
		"submitted_at": sql.NullTime{Valid: true, Time: time.Now()},
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Only rejected tasks can be resubmitted")
		}

		xcontext.Logger(ctx).Errorf("Cannot resubmit activity: %v", err)
		return nil, errorx.Unknown
	}

	activity, err = d.activityRepo.GetByID(ctx, activity.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ResubmitTaskResponse{Activity: convertActivity(activity)}, nil
}

func (d *activityDomain) getOrCreateActivity(
	ctx context.Context, userID string, reward *entity.Reward, task entity.RewardTask,
) (*entity.UserTaskActivity, error) {
	activity, err := d.activityRepo.Get(ctx, userID, reward.ID, task.ID)
	if err == nil {
		return activity, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	activity = &entity.UserTaskActivity{
		Base:     entity.Base{ID: uuid.NewString()},
		RewardID: reward.ID,
		TaskID:   task.ID,
		UserID:   userID,
		TenantID: reward.TenantID,
		Status:   entity.ActivityInProgress,
	}
	if err := d.activityRepo.Create(ctx, activity); err != nil {
		// Another request may have created it first.
		existing, getErr := d.activityRepo.Get(ctx, userID, reward.ID, task.ID)
		if getErr != nil {
			xcontext.Logger(ctx).Errorf("Cannot create activity: %v", err)
			return nil, errorx.Unknown
		}

		return existing, nil
	}

	return activity, nil
}

// complete moves an activity which reached its target out of in_progress.
func (d *activityDomain) complete(
	ctx context.Context,
	activity *entity.UserTaskActivity,
	reward *entity.Reward,
	task entity.RewardTask,
) (*entity.UserTaskActivity, error) {
	if !reward.RequiresVerification {
		approved, err := d.approver.approve(ctx, activity, entity.ActivityInProgress, reward, task, "")
		if err != nil {
			if errors.Is(err, errorx.Error{Code: errorx.BadRequest}) {
				// Completed by a concurrent request.
				return d.reload(ctx, activity.ID)
			}

			return nil, err
		}

		return approved, nil
	}

	err := d.activityRepo.UpdateStatus(ctx, activity.ID, entity.ActivityInProgress, map[string]any{
		"status":       entity.ActivityPendingVerification,
		"submitted_at": sql.NullTime{Valid: true, Time: time.Now()},
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot submit activity: %v", err)
		return nil, errorx.Unknown
	}

	return d.reload(ctx, activity.ID)
}

func (d *activityDomain) reload(ctx context.Context, id string) (*entity.UserTaskActivity, error) {
	activity, err := d.activityRepo.GetByID(ctx, id)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	return activity, nil
}

func checkProgressable(activity *entity.UserTaskActivity) error {
	switch activity.Status {
	case entity.ActivityInProgress:
		return nil
	case entity.ActivityRejected:
		return errorx.New(errorx.BadRequest, "Task was rejected, please resubmit it instead")
	case entity.ActivityPendingVerification:
		return errorx.New(errorx.BadRequest, "Task is waiting for verification")
	case entity.ActivityClaimed:
		return errorx.New(errorx.BadRequest, "Reward was already claimed")
	default:
		return errorx.New(errorx.BadRequest, "Task was already completed")
	}
}
