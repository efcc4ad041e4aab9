package domain

import (
	"testing"

	"github.com/alumnet-lab/backend/config"
	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestTierInfo(t *testing.T) {
	testCases := []struct {
		points  uint64
		current string
		next    string
	}{
		{points: 0, current: "bronze", next: "silver"},
		{points: 499, current: "bronze", next: "silver"},
		{points: 500, current: "silver", next: "gold"},
		{points: 4999, current: "gold", next: "platinum"},
		{points: 10000, current: "platinum"},
	}

	for _, tc := range testCases {
		current, next := TierInfo(config.DefaultTiers, tc.points)
		require.Equal(t, tc.current, current.Name)
		if tc.next == "" {
			require.Nil(t, next)
		} else {
			require.NotNil(t, next)
			require.Equal(t, tc.next, next.Name)
		}
	}

	// The order of the configuration doesn't matter.
	current, next := TierInfo([]config.TierConfig{
		{Name: "gold", MinPoints: 100},
		{Name: "base", MinPoints: 0},
	}, 50)
	require.Equal(t, "base", current.Name)
	require.Equal(t, "gold", next.Name)
}

func Test_summaryDomain(t *testing.T) {
	s := newSuite(t)
	redisClient := testutil.NewMockRedisClient()
	d := NewSummaryDomain(
		s.userRepo, s.memberRepo, s.activityRepo, s.redemptionRepo, s.userBadgeRepo, s.badgeRepo, redisClient)

	testutil.SampleMember(t, s.ctx, entity.Member{
		UserID:      s.alumni.ID,
		TenantID:    s.tenant.ID,
		Points:      600,
		TotalPoints: 600,
	})
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{Cost: 100})
	pending := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{RequiresVerification: true})
	b := testutil.SampleBadge(t, s.ctx, s.tenant.ID, entity.Badge{})

	ctx := s.as(s.alumni)
	for _, r := range []entity.Reward{reward, pending} {
		_, err := s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
			RewardID: r.ID, TaskID: "task-1", Amount: 1,
		})
		require.NoError(t, err)
	}

	_, err := s.redemptionDomain().Claim(ctx, &model.ClaimRewardRequest{RewardID: reward.ID})
	require.NoError(t, err)

	_, err = s.badgeDomain().Award(s.as(s.admin), &model.AwardBadgeRequest{BadgeID: b.ID, UserID: s.alumni.ID})
	require.NoError(t, err)

	summary, err := d.GetSummary(ctx, &model.GetUserSummaryRequest{UserID: "me"})
	require.NoError(t, err)
	require.Equal(t, uint64(510), summary.Balance)
	require.Equal(t, uint64(610), summary.TotalPoints)
	require.Equal(t, uint64(1), summary.CompletedTasks)
	require.Equal(t, "silver", summary.Tier)
	require.Equal(t, int64(1), summary.Redemptions)
	require.Equal(t, uint64(100), summary.PointsSpent)
	require.Equal(t, int64(2), summary.TotalAmount)
	require.ElementsMatch(t, []model.ActivityStatusCount{
		{Status: "claimed", Count: 1, Amount: 1},
		{Status: "pending_verification", Count: 1, Amount: 1},
	}, summary.Activities)
	require.Len(t, summary.Badges, 1)

	// The summary is served from cache until it expires.
	key := common.RedisKeyUserSummary(s.tenant.ID, s.alumni.ID)
	require.Equal(t, summaryCacheTTL, redisClient.TTLs[key])
	require.NoError(t, s.memberRepo.IncreasePoints(s.ctx, s.alumni.ID, s.tenant.ID, 50, false))

	cached, err := d.GetSummary(s.as(s.staff), &model.GetUserSummaryRequest{UserID: s.alumni.ID})
	require.NoError(t, err)
	require.Equal(t, uint64(510), cached.Balance)
	require.Equal(t, uint64(610), cached.TotalPoints)
	require.Len(t, cached.Badges, 1)
	require.Equal(t, summary.Badges[0].ID, cached.Badges[0].ID)

	tier, err := d.GetTier(s.as(s.staff), &model.GetUserTierRequest{UserID: s.alumni.ID})
	require.NoError(t, err)
	require.Equal(t, "silver", tier.Tier)
	require.Equal(t, "gold", tier.NextTier)
	require.Equal(t, uint64(840), tier.PointsToNextTier)

	_, err = d.GetTier(s.as(s.student), &model.GetUserTierRequest{UserID: s.alumni.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = d.GetSummary(s.as(s.staff), &model.GetUserSummaryRequest{UserID: "unknown"})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_summaryDomain_TierCountsBadgePoints(t *testing.T) {
	s := newSuite(t)
	d := NewSummaryDomain(s.userRepo, s.memberRepo, s.activityRepo, s.redemptionRepo,
		s.userBadgeRepo, s.badgeRepo, testutil.NewMockRedisClient())

	testutil.SampleMember(t, s.ctx, entity.Member{
		UserID:      s.alumni.ID,
		TenantID:    s.tenant.ID,
		Points:      490,
		TotalPoints: 490,
	})
	b := testutil.SampleBadge(t, s.ctx, s.tenant.ID, entity.Badge{Points: 15})

	tier, err := d.GetTier(s.as(s.alumni), &model.GetUserTierRequest{UserID: "me"})
	require.NoError(t, err)
	require.Equal(t, "bronze", tier.Tier)

	_, err = s.badgeDomain().Award(s.as(s.admin), &model.AwardBadgeRequest{BadgeID: b.ID, UserID: s.alumni.ID})
	require.NoError(t, err)

	// Badge points are lifetime points too.
	tier, err = d.GetTier(s.as(s.alumni), &model.GetUserTierRequest{UserID: "me"})
	require.NoError(t, err)
	require.Equal(t, "silver", tier.Tier)
	require.Equal(t, uint64(995), tier.PointsToNextTier)
}
