package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/domain/badge"
	"github.com/alumnet-lab/backend/internal/domain/notification"
	"github.com/alumnet-lab/backend/internal/domain/statistic"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// TaskApprover moves an activity to approved and credits the task points to
// the member. Side effects (leaderboard, badges, notifications) run after the
// commit and never fail the approval.
type TaskApprover struct {
	activityRepo repository.ActivityRepository
	memberRepo   repository.MemberRepository
	leaderboard  statistic.Leaderboard
	badgeManager *badge.Manager
	notifier     notification.Notifier
}

func NewTaskApprover(
	activityRepo repository.ActivityRepository,
	memberRepo repository.MemberRepository,
	leaderboard statistic.Leaderboard,
	badgeManager *badge.Manager,
	notifier notification.Notifier,
) *TaskApprover {
	return &TaskApprover{
		activityRepo: activityRepo,
		memberRepo:   memberRepo,
		leaderboard:  leaderboard,
		badgeManager: badgeManager,
		notifier:     notifier,
	}
}

func (a *TaskApprover) approve(
	ctx context.Context,
	activity *entity.UserTaskActivity,
	from entity.ActivityStatus,
	reward *entity.Reward,
	task entity.RewardTask,
	verifierID string,
) (*entity.UserTaskActivity, error) {
	now := time.Now()
	verifier := sql.NullString{Valid: verifierID != "", String: verifierID}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	err := a.activityRepo.UpdateStatus(txCtx, activity.ID, from, map[string]any{
		"status":      entity.ActivityApproved,
		"points":      task.Points,
		"verifier_id": verifier,
		"verified_at": sql.NullTime{Valid: true, Time: now},
		"reason":      "",
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Activity is not %s anymore", from)
		}

		xcontext.Logger(ctx).Errorf("Cannot approve activity: %v", err)
		return nil, errorx.Unknown
	}

	member := &entity.Member{UserID: activity.UserID, TenantID: activity.TenantID}
	if err := a.memberRepo.Upsert(txCtx, member); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert member: %v", err)
		return nil, errorx.Unknown
	}

	err = a.memberRepo.IncreasePoints(txCtx, activity.UserID, activity.TenantID, task.Points, true)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase points of member: %v", err)
		return nil, errorx.Unknown
	}

	approved, err := a.activityRepo.GetByID(txCtx, activity.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get approved activity: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(txCtx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit approval: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.TaskVerificationTotal].WithLabelValues("approve").Inc()
	a.afterApproved(ctx, approved, reward, task, now)
	return approved, nil
}

func (a *TaskApprover) afterApproved(
	ctx context.Context,
	activity *entity.UserTaskActivity,
	reward *entity.Reward,
	task entity.RewardTask,
	verifiedAt time.Time,
) {
	err := a.leaderboard.ChangeLeaderboard(ctx, task.Points, 1, verifiedAt, activity.UserID, activity.TenantID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot change leaderboard: %v", err)
	}

	a.notifier.Notify(ctx, notification.Message{
		TenantID: activity.TenantID,
		UserID:   activity.UserID,
		Type:     common.NotificationTaskApproved,
		Title:    "Task approved",
		Data: map[string]any{
			"Task":      task.Title,
			"Reward":    reward.Title,
			"Points":    task.Points,
			"reward_id": reward.ID,
			"task_id":   task.ID,
		},
	})

	a.giveBadges(ctx, activity.UserID, activity.TenantID)
}

// giveBadges awards every badge which the member reached and credits the
// points of those badges.
func (a *TaskApprover) giveBadges(ctx context.Context, userID, tenantID string) {
	badges, err := a.badgeManager.WithCriteria(a.badgeManager.GetAllCriteria()...).
		ScanAndGive(ctx, userID, tenantID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot scan badges of user %s: %v", userID, err)
		return
	}

	for _, b := range badges {
		if b.Points > 0 {
			// Cached leaderboards pick badge points up when they are reloaded.
			if err := a.memberRepo.IncreasePoints(ctx, userID, tenantID, b.Points, false); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot credit points of badge %s: %v", b.ID, err)
			}
		}

		a.notifier.Notify(ctx, notification.Message{
			TenantID: tenantID,
			UserID:   userID,
			Type:     common.NotificationBadgeAwarded,
			Title:    "New badge",
			Data:     map[string]any{"Badge": b.Name, "badge_id": b.ID},
		})
	}
}
