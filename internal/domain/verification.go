package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/domain/notification"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	verifyActionApprove = "approve"
	verifyActionReject  = "reject"
)

type VerificationDomain interface {
	GetList(context.Context, *model.GetVerificationsRequest) (*model.GetVerificationsResponse, error)
	Verify(context.Context, *model.VerifyTaskRequest) (*model.VerifyTaskResponse, error)
}

type verificationDomain struct {
	activityRepo repository.ActivityRepository
	rewardRepo   repository.RewardRepository
	roleVerifier *common.RoleVerifier
	approver     *TaskApprover
	notifier     notification.Notifier
}

func NewVerificationDomain(
	activityRepo repository.ActivityRepository,
	rewardRepo repository.RewardRepository,
	roleVerifier *common.RoleVerifier,
	approver *TaskApprover,
	notifier notification.Notifier,
) VerificationDomain {
	return &verificationDomain{
		activityRepo: activityRepo,
		rewardRepo:   rewardRepo,
		roleVerifier: roleVerifier,
		approver:     approver,
		notifier:     notifier,
	}
}

func (d *verificationDomain) GetList(
	ctx context.Context, req *model.GetVerificationsRequest,
) (*model.GetVerificationsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.ReviewerRoles...); err != nil {
		return nil, err
	}

	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	activities, total, err := d.activityRepo.GetList(ctx, repository.ActivityFilter{
		TenantID: tenantID,
		RewardID: req.RewardID,
		Status:   []entity.ActivityStatus{entity.ActivityPendingVerification},
	}, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pending activities: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetVerificationsResponse{
		Page:       router.NewPage(offset, limit, total),
		Activities: convertActivities(activities),
	}, nil
}

func (d *verificationDomain) Verify(
	ctx context.Context, req *model.VerifyTaskRequest,
) (*model.VerifyTaskResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.ReviewerRoles...); err != nil {
		return nil, err
	}

	if req.Action != verifyActionApprove && req.Action != verifyActionReject {
		return nil, errorx.New(errorx.BadRequest, "Action must be approve or reject")
	}

	activity, err := d.activityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckTenant(ctx, activity.TenantID); err != nil {
		return nil, errorx.New(errorx.NotFound, "Not found activity")
	}

	if activity.UserID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot verify your own task")
	}

	if activity.Status != entity.ActivityPendingVerification {
		return nil, errorx.New(errorx.BadRequest, "Activity is not pending verification")
	}

	// The template may have been deleted after the submission, the task still
	// keeps its points.
	reward, err := d.rewardRepo.GetByIDUnscoped(ctx, activity.RewardID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward of activity: %v", err)
		return nil, errorx.Unknown
	}

	task, ok := reward.FindTask(activity.TaskID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found task")
	}

	verifierID := xcontext.RequestUserID(ctx)
	if req.Action == verifyActionApprove {
		approved, err := d.approver.approve(
			ctx, activity, entity.ActivityPendingVerification, reward, task, verifierID)
		if err != nil {
			return nil, err
		}

		return &model.VerifyTaskResponse{Activity: convertActivity(approved)}, nil
	}

	err = d.activityRepo.UpdateStatus(ctx, activity.ID, entity.ActivityPendingVerification, map[string]any{
		"status":      entity.ActivityRejected,
		"verifier_id": sql.NullString{Valid: true, String: verifierID},
		"verified_at": sql.NullTime{Valid: true, Time: time.Now()},
		"reason":      req.Reason,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Activity is not pending verification")
		}

		xcontext.Logger(ctx).Errorf("Cannot reject activity: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.TaskVerificationTotal].WithLabelValues(verifyActionReject).Inc()

	rejected, err := d.activityRepo.GetByID(ctx, activity.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	d.notifier.Notify(ctx, notification.Message{
		TenantID: activity.TenantID,
		UserID:   activity.UserID,
		Type:     common.NotificationTaskRejected,
		Title:    "Task rejected",
		Data: map[string]any{
			"Task":        task.Title,
			"Reward":      reward.Title,
			"Reason":      req.Reason,
			"activity_id": activity.ID,
		},
	})

	return &model.VerifyTaskResponse{Activity: convertActivity(rejected)}, nil
}
