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
	"github.com/alumnet-lab/backend/pkg/idutil"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RedemptionDomain interface {
	Claim(context.Context, *model.ClaimRewardRequest) (*model.ClaimRewardResponse, error)
	GetList(context.Context, *model.GetRedemptionsRequest) (*model.GetRedemptionsResponse, error)
}

type redemptionDomain struct {
	rewardRepo     repository.RewardRepository
	activityRepo   repository.ActivityRepository
	memberRepo     repository.MemberRepository
	redemptionRepo repository.RedemptionRepository
	notifier       notification.Notifier
}

func NewRedemptionDomain(
	rewardRepo repository.RewardRepository,
	activityRepo repository.ActivityRepository,
	memberRepo repository.MemberRepository,
	redemptionRepo repository.RedemptionRepository,
	notifier notification.Notifier,
) RedemptionDomain {
	return &redemptionDomain{
		rewardRepo:     rewardRepo,
		activityRepo:   activityRepo,
		memberRepo:     memberRepo,
		redemptionRepo: redemptionRepo,
		notifier:       notifier,
	}
}

func (d *redemptionDomain) Claim(
	ctx context.Context, req *model.ClaimRewardRequest,
) (*model.ClaimRewardResponse, error) {
	reward, err := getTenantReward(ctx, d.rewardRepo, req.RewardID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	issuerID := req.IssuerID
	if issuerID == "" {
		issuerID = userID
	}

	if issuerID != userID && !common.HasRole(ctx, entity.ReviewerRoles...) {
		return nil, errorx.New(errorx.PermissionDenied, "Only staff can issue a reward on behalf of others")
	}

	activities, _, err := d.activityRepo.GetList(ctx, repository.ActivityFilter{
		UserID:   userID,
		RewardID: reward.ID,
	}, 0, allRows)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activities of reward: %v", err)
		return nil, errorx.Unknown
	}

	activityByTask := map[string]entity.UserTaskActivity{}
	for _, a := range activities {
		if a.Status == entity.ActivityClaimed {
			return nil, errorx.New(errorx.BadRequest, "Reward already claimed")
		}
		activityByTask[a.TaskID] = a
	}

	for _, task := range reward.Tasks {
		a, ok := activityByTask[task.ID]
		if !ok || a.Status != entity.ActivityApproved {
			return nil, errorx.New(errorx.BadRequest, "Task %s is not approved yet", task.Title)
		}
	}

	voucherCode := req.VoucherCode
	if voucherCode == "" {
		voucherCode = idutil.VoucherCode(xcontext.SnowFlake(ctx).Generate())
	}

	now := time.Now()
	redemption := &entity.Redemption{
		Base:        entity.Base{ID: uuid.NewString()},
		TenantID:    reward.TenantID,
		RewardID:    reward.ID,
		UserID:      userID,
		Cost:        reward.Cost,
		VoucherCode: voucherCode,
		IssuerID:    issuerID,
		Note:        req.Note,
	}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	for _, task := range reward.Tasks {
		err := d.activityRepo.UpdateStatus(txCtx, activityByTask[task.ID].ID, entity.ActivityApproved, map[string]any{
			"status":     entity.ActivityClaimed,
			"claimed_at": sql.NullTime{Valid: true, Time: now},
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.BadRequest, "Reward already claimed")
			}

			xcontext.Logger(ctx).Errorf("Cannot claim activity: %v", err)
			return nil, errorx.Unknown
		}
	}

	if reward.Cost > 0 {
		err := d.memberRepo.DecreasePoints(txCtx, userID, reward.TenantID, reward.Cost)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.BadRequest, "Insufficient points")
			}

			xcontext.Logger(ctx).Errorf("Cannot decrease points of member: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.memberRepo.IncreaseRedemptions(txCtx, userID, reward.TenantID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase redemptions of member: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.redemptionRepo.Create(txCtx, redemption); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create redemption: %v", err)
		return nil, errorx.Unknown
	}

	claimed, _, err := d.activityRepo.GetList(txCtx, repository.ActivityFilter{
		UserID:   userID,
		RewardID: reward.ID,
	}, 0, allRows)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claimed activities: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(txCtx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit claim: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.RewardClaimTotal].WithLabelValues(reward.TenantID).Inc()
	d.notifier.Notify(ctx, notification.Message{
		TenantID: reward.TenantID,
		UserID:   userID,
		Type:     common.NotificationRewardClaimed,
		Title:    "Reward claimed",
		Data: map[string]any{
			"Reward":        reward.Title,
			"VoucherCode":   voucherCode,
			"reward_id":     reward.ID,
			"redemption_id": redemption.ID,
		},
	})

	return &model.ClaimRewardResponse{
		Activities: convertActivities(claimed),
		Redemption: convertRedemption(redemption),
	}, nil
}

func (d *redemptionDomain) GetList(
	ctx context.Context, req *model.GetRedemptionsRequest,
) (*model.GetRedemptionsResponse, error) {
	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.RedemptionFilter{
		TenantID: tenantID,
		UserID:   req.UserID,
		RewardID: req.RewardID,
	}

	// Non admins only see their own redemptions.
	if !common.IsAdmin(ctx) {
		filter.UserID = xcontext.RequestUserID(ctx)
	}

	redemptions, total, err := d.redemptionRepo.GetList(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get redemptions: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Redemption{}
	for i := range redemptions {
		result = append(result, convertRedemption(&redemptions[i]))
	}

	return &model.GetRedemptionsResponse{
		Page:        router.NewPage(offset, limit, total),
		Redemptions: result,
	}, nil
}
