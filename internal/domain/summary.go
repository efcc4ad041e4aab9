package domain

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/alumnet-lab/backend/config"
	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/alumnet-lab/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// summaryCacheTTL bounds how stale a cached summary can be. Summaries are not
// invalidated on change.
const summaryCacheTTL = 30 * time.Second

type SummaryDomain interface {
	GetTier(context.Context, *model.GetUserTierRequest) (*model.GetUserTierResponse, error)
	GetSummary(context.Context, *model.GetUserSummaryRequest) (*model.GetUserSummaryResponse, error)
}

type summaryDomain struct {
	userRepo       repository.UserRepository
	memberRepo     repository.MemberRepository
	activityRepo   repository.ActivityRepository
	redemptionRepo repository.RedemptionRepository
	userBadgeRepo  repository.UserBadgeRepository
	badgeRepo      repository.BadgeRepository
	redisClient    xredis.Client
}

func NewSummaryDomain(
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	activityRepo repository.ActivityRepository,
	redemptionRepo repository.RedemptionRepository,
	userBadgeRepo repository.UserBadgeRepository,
	badgeRepo repository.BadgeRepository,
	redisClient xredis.Client,
) SummaryDomain {
	return &summaryDomain{
		userRepo:       userRepo,
		memberRepo:     memberRepo,
		activityRepo:   activityRepo,
		redemptionRepo: redemptionRepo,
		userBadgeRepo:  userBadgeRepo,
		badgeRepo:      badgeRepo,
		redisClient:    redisClient,
	}
}

// TierInfo returns the highest tier whose lower bound is not greater than
// points, and the next tier if there is one.
func TierInfo(tiers []config.TierConfig, points uint64) (current config.TierConfig, next *config.TierConfig) {
	sorted := append([]config.TierConfig{}, tiers...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinPoints < sorted[j].MinPoints })

	for i, t := range sorted {
		if t.MinPoints > points {
			next := sorted[i]
			return current, &next
		}
		current = t
	}

	return current, nil
}

func (d *summaryDomain) GetTier(
	ctx context.Context, req *model.GetUserTierRequest,
) (*model.GetUserTierResponse, error) {
	member, err := d.getMember(ctx, req.UserID, req.TenantID)
	if err != nil {
		return nil, err
	}

	current, next := TierInfo(xcontext.Configs(ctx).Reward.Tiers, member.TotalPoints)
	resp := &model.GetUserTierResponse{
		UserID:      member.UserID,
		TotalPoints: member.TotalPoints,
		Tier:        current.Name,
	}

	if next != nil {
		resp.NextTier = next.Name
		resp.PointsToNextTier = next.MinPoints - member.TotalPoints
	}

	return resp, nil
}

func (d *summaryDomain) GetSummary(
	ctx context.Context, req *model.GetUserSummaryRequest,
) (*model.GetUserSummaryResponse, error) {
	member, err := d.getMember(ctx, req.UserID, req.TenantID)
	if err != nil {
		return nil, err
	}

	key := common.RedisKeyUserSummary(member.TenantID, member.UserID)
	var cached model.GetUserSummaryResponse
	if err := d.redisClient.GetObj(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, redis.Nil) {
		xcontext.Logger(ctx).Warnf("Cannot get cached summary: %v", err)
	}

	counts, err := d.activityRepo.CountByStatus(ctx, member.UserID, member.TenantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count activities: %v", err)
		return nil, errorx.Unknown
	}

	redemption, err := d.redemptionRepo.Summary(ctx, member.UserID, member.TenantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot summarize redemptions: %v", err)
		return nil, errorx.Unknown
	}

	badges, err := getUserBadges(ctx, d.userBadgeRepo, d.badgeRepo, member.UserID, member.TenantID)
	if err != nil {
		return nil, err
	}

	current, _ := TierInfo(xcontext.Configs(ctx).Reward.Tiers, member.TotalPoints)
	resp := &model.GetUserSummaryResponse{
		UserID:         member.UserID,
		TenantID:       member.TenantID,
		Balance:        member.Points,
		TotalPoints:    member.TotalPoints,
		CompletedTasks: member.CompletedTasks,
		Tier:           current.Name,
		Activities:     []model.ActivityStatusCount{},
		Redemptions:    redemption.Count,
		PointsSpent:    redemption.Spent,
		Badges:         badges,
	}

	for _, c := range counts {
		resp.Activities = append(resp.Activities, model.ActivityStatusCount{
			Status: string(c.Status),
			Count:  c.Count,
			Amount: c.Amount,
		})
		resp.TotalAmount += c.Amount
	}

	if err := d.redisClient.SetObj(ctx, key, resp, summaryCacheTTL); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache summary: %v", err)
	}

	return resp, nil
}

// getMember returns the member of user in the requested tenant. Users can
// read their own data, reviewers can read data of any user in their tenant.
func (d *summaryDomain) getMember(ctx context.Context, userID, tenantID string) (*entity.Member, error) {
	tenantID, err := common.ResolveTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if userID == "me" || userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if userID != xcontext.RequestUserID(ctx) && !common.HasRole(ctx, entity.ReviewerRoles...) {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot read data of another user")
	}

	member, err := d.memberRepo.Get(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user in tenant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	return member, nil
}

func getUserBadges(
	ctx context.Context,
	userBadgeRepo repository.UserBadgeRepository,
	badgeRepo repository.BadgeRepository,
	userID, tenantID string,
) ([]model.UserBadge, error) {
	userBadges, err := userBadgeRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user badges: %v", err)
		return nil, errorx.Unknown
	}

	badgeIDs := []string{}
	for _, ub := range userBadges {
		badgeIDs = append(badgeIDs, ub.BadgeID)
	}

	badges, err := badgeRepo.GetByIDs(ctx, badgeIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges: %v", err)
		return nil, errorx.Unknown
	}

	badgeByID := map[string]entity.Badge{}
	for _, b := range badges {
		badgeByID[b.ID] = b
	}

	result := []model.UserBadge{}
	for i, ub := range userBadges {
		b, ok := badgeByID[ub.BadgeID]
		if !ok {
			continue
		}

		// Global badges are visible in every tenant.
		if b.TenantID.Valid && b.TenantID.String != tenantID {
			continue
		}

		result = append(result, convertUserBadge(&userBadges[i], convertBadge(&b)))
	}

	return result, nil
}
