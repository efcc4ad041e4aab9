package domain

import (
	"context"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/domain/statistic"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// pointBounds are the lower bounds of the points distribution buckets.
var pointBounds = []uint64{0, 100, 500, 1500, 5000}

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetMyRank(context.Context, *model.GetMyLeaderboardRankRequest) (*model.GetMyLeaderboardRankResponse, error)
	GetPointsDistribution(context.Context, *model.GetAnalyticsRequest) (*model.GetPointsDistributionResponse, error)
	GetTaskCompletion(context.Context, *model.GetAnalyticsRequest) (*model.GetTaskCompletionResponse, error)
	GetRewardClaims(context.Context, *model.GetAnalyticsRequest) (*model.GetRewardClaimsResponse, error)
	GetDepartments(context.Context, *model.GetAnalyticsRequest) (*model.GetDepartmentStatisticResponse, error)
	GetOverview(context.Context, *model.GetAnalyticsRequest) (*model.GetAnalyticsOverviewResponse, error)
	GetUserHistory(context.Context, *model.GetUserHistoryRequest) (*model.GetUserHistoryResponse, error)
}

type statisticDomain struct {
	activityRepo   repository.ActivityRepository
	memberRepo     repository.MemberRepository
	redemptionRepo repository.RedemptionRepository
	rewardRepo     repository.RewardRepository
	roleVerifier   *common.RoleVerifier
	leaderboard    statistic.Leaderboard
}

func NewStatisticDomain(
	activityRepo repository.ActivityRepository,
	memberRepo repository.MemberRepository,
	redemptionRepo repository.RedemptionRepository,
	rewardRepo repository.RewardRepository,
	roleVerifier *common.RoleVerifier,
	leaderboard statistic.Leaderboard,
) StatisticDomain {
	return &statisticDomain{
		activityRepo:   activityRepo,
		memberRepo:     memberRepo,
		redemptionRepo: redemptionRepo,
		rewardRepo:     rewardRepo,
		roleVerifier:   roleVerifier,
		leaderboard:    leaderboard,
	}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	period, orderedBy, err := leaderboardParams(req.Period, req.OrderedBy)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	leaderboard, err := d.leaderboard.GetLeaderboard(ctx, tenantID, orderedBy, period, offset, limit)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderboardResponse{Leaderboard: leaderboard}, nil
}

func (d *statisticDomain) GetMyRank(
	ctx context.Context, req *model.GetMyLeaderboardRankRequest,
) (*model.GetMyLeaderboardRankResponse, error) {
	tenantID, err := common.ResolveTenantID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	period, orderedBy, err := leaderboardParams(req.Period, req.OrderedBy)
	if err != nil {
		return nil, err
	}

	rank, err := d.leaderboard.GetRank(ctx, xcontext.RequestUserID(ctx), tenantID, orderedBy, period)
	if err != nil {
		return nil, err
	}

	return &model.GetMyLeaderboardRankResponse{Rank: rank}, nil
}

func (d *statisticDomain) GetPointsDistribution(
	ctx context.Context, req *model.GetAnalyticsRequest,
) (*model.GetPointsDistributionResponse, error) {
	tenantID, err := d.analyticsTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	buckets, err := d.pointsDistribution(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &model.GetPointsDistributionResponse{Buckets: buckets}, nil
}

func (d *statisticDomain) GetTaskCompletion(
	ctx context.Context, req *model.GetAnalyticsRequest,
) (*model.GetTaskCompletionResponse, error) {
	tenantID, err := d.analyticsTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	tasks, err := d.taskCompletion(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &model.GetTaskCompletionResponse{Tasks: tasks}, nil
}

func (d *statisticDomain) GetRewardClaims(
	ctx context.Context, req *model.GetAnalyticsRequest,
) (*model.GetRewardClaimsResponse, error) {
	tenantID, err := d.analyticsTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	rewards, err := d.rewardClaims(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &model.GetRewardClaimsResponse{Rewards: rewards}, nil
}

func (d *statisticDomain) GetDepartments(
	ctx context.Context, req *model.GetAnalyticsRequest,
) (*model.GetDepartmentStatisticResponse, error) {
	tenantID, err := d.analyticsTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	departments, err := d.departments(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &model.GetDepartmentStatisticResponse{Departments: departments}, nil
}

// GetOverview runs every analytics query concurrently.
func (d *statisticDomain) GetOverview(
	ctx context.Context, req *model.GetAnalyticsRequest,
) (*model.GetAnalyticsOverviewResponse, error) {
	tenantID, err := d.analyticsTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	resp := &model.GetAnalyticsOverviewResponse{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.Buckets, err = d.pointsDistribution(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		resp.Tasks, err = d.taskCompletion(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		resp.Rewards, err = d.rewardClaims(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		resp.Departments, err = d.departments(gctx, tenantID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}

func (d *statisticDomain) GetUserHistory(
	ctx context.Context, req *model.GetUserHistoryRequest,
) (*model.GetUserHistoryResponse, error) {
	tenantID, err := d.analyticsTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	offset, limit, err := common.Paginate(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	activities, total, err := d.activityRepo.GetList(ctx, repository.ActivityFilter{
		TenantID: tenantID,
		UserID:   req.UserID,
	}, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get history of user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserHistoryResponse{
		Page:       router.NewPage(offset, limit, total),
		Activities: convertActivities(activities),
	}, nil
}

func (d *statisticDomain) analyticsTenant(ctx context.Context, tenantID string) (string, error) {
	if err := d.roleVerifier.Verify(ctx, entity.ReviewerRoles...); err != nil {
		return "", err
	}

	return common.ResolveTenantID(ctx, tenantID)
}

func (d *statisticDomain) pointsDistribution(ctx context.Context, tenantID string) ([]model.PointBucket, error) {
	buckets, err := d.memberRepo.PointsDistribution(ctx, tenantID, pointBounds)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get points distribution: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.PointBucket{}
	for _, b := range buckets {
		result = append(result, model.PointBucket{Bucket: b.Bucket, Members: b.Members})
	}

	return result, nil
}

func (d *statisticDomain) taskCompletion(ctx context.Context, tenantID string) ([]model.TaskCompletion, error) {
	completions, err := d.activityRepo.TaskCompletion(ctx, tenantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get task completion: %v", err)
		return nil, errorx.Unknown
	}

	rewards, err := d.rewardsByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := []model.TaskCompletion{}
	for _, c := range completions {
		tc := model.TaskCompletion{
			RewardID: c.RewardID,
			TaskID:   c.TaskID,
			Approved: c.Approved,
			Pending:  c.Pending,
			Rejected: c.Rejected,
		}

		if reward, ok := rewards[c.RewardID]; ok {
			tc.RewardTitle = reward.Title
			if task, ok := reward.FindTask(c.TaskID); ok {
				tc.TaskTitle = task.Title
			}
		}

		result = append(result, tc)
	}

	return result, nil
}

func (d *statisticDomain) rewardClaims(ctx context.Context, tenantID string) ([]model.RewardClaim, error) {
	claims, err := d.redemptionRepo.ClaimStatistic(ctx, tenantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward claims: %v", err)
		return nil, errorx.Unknown
	}

	rewards, err := d.rewardsByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := []model.RewardClaim{}
	for _, c := range claims {
		result = append(result, model.RewardClaim{
			RewardID: c.RewardID,
			Title:    rewards[c.RewardID].Title,
			Claims:   c.Claims,
			Spent:    c.Spent,
		})
	}

	return result, nil
}

func (d *statisticDomain) departments(ctx context.Context, tenantID string) ([]model.DepartmentStatistic, error) {
	departments, err := d.memberRepo.DepartmentStatistic(ctx, tenantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get department statistic: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.DepartmentStatistic{}
	for _, dep := range departments {
		result = append(result, model.DepartmentStatistic{
			Department:  dep.Department,
			Members:     dep.Members,
			TotalPoints: dep.TotalPoints,
			Tasks:       dep.Tasks,
		})
	}

	return result, nil
}

func (d *statisticDomain) rewardsByID(ctx context.Context, tenantID string) (map[string]entity.Reward, error) {
	rewards, err := d.rewardRepo.GetList(ctx, repository.RewardFilter{
		TenantID:        tenantID,
		IncludeInactive: true,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rewards: %v", err)
		return nil, errorx.Unknown
	}

	result := map[string]entity.Reward{}
	for _, r := range rewards {
		result[r.ID] = r
	}

	return result, nil
}

func leaderboardParams(periodString, orderedBy string) (statistic.Period, string, error) {
	period, err := statistic.ToPeriod(periodString)
	if err != nil {
		return statistic.Period{}, "", errorx.New(errorx.BadRequest, "Invalid period")
	}

	switch orderedBy {
	case "":
		orderedBy = statistic.OrderedByPoint
	case statistic.OrderedByPoint, statistic.OrderedByTask:
	default:
		return statistic.Period{}, "", errorx.New(errorx.BadRequest, "Invalid ordered by")
	}

	return period, orderedBy, nil
}
