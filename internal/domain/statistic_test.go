package domain

import (
	"testing"

	"github.com/alumnet-lab/backend/internal/domain/statistic"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type statisticFixture struct {
	*suite
	domain  StatisticDomain
	eng     entity.User
	reward  entity.Reward
	pending entity.Reward
}

// newStatisticFixture builds a tenant where the alumni completed and claimed
// one task (10 points, cost 5) and an engineer with 700 points waits for the
// verification of another task.
func newStatisticFixture(t *testing.T) *statisticFixture {
	s := newSuite(t)
	leaderboard := statistic.New(s.activityRepo, s.memberRepo, s.userRepo, testutil.NewMockRedisClient())
	f := &statisticFixture{
		suite: s,
		domain: NewStatisticDomain(
			s.activityRepo, s.memberRepo, s.redemptionRepo, s.rewardRepo, s.roleVerifier, leaderboard),
	}

	f.eng = testutil.SampleUser(t, s.ctx, s.tenant.ID, entity.User{Department: "Engineering"})
	testutil.SampleMember(t, s.ctx, entity.Member{
		UserID:         f.eng.ID,
		TenantID:       s.tenant.ID,
		Points:         700,
		TotalPoints:    700,
		CompletedTasks: 3,
	})

	f.reward = testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{Cost: 5})
	f.pending = testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{RequiresVerification: true})

	_, err := s.activityDomain().RecordProgress(s.as(s.alumni), &model.RecordProgressRequest{
		RewardID: f.reward.ID, TaskID: "task-1", Amount: 1,
	})
	require.NoError(t, err)

	_, err = s.redemptionDomain().Claim(s.as(s.alumni), &model.ClaimRewardRequest{RewardID: f.reward.ID})
	require.NoError(t, err)

	_, err = s.activityDomain().RecordProgress(s.as(f.eng), &model.RecordProgressRequest{
		RewardID: f.pending.ID, TaskID: "task-1", Amount: 1,
	})
	require.NoError(t, err)

	return f
}

func Test_statisticDomain_Leaderboard(t *testing.T) {
	f := newStatisticFixture(t)
	ctx := f.as(f.alumni)

	resp, err := f.domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Period: statistic.PeriodAll})
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 5)
	require.Equal(t, f.eng.ID, resp.Leaderboard[0].User.ID)
	require.Equal(t, f.eng.Name, resp.Leaderboard[0].User.Name)
	require.Equal(t, 700, resp.Leaderboard[0].Value)
	require.Equal(t, 1, resp.Leaderboard[0].CurrentRank)
	require.Equal(t, f.alumni.ID, resp.Leaderboard[1].User.ID)
	require.Equal(t, 10, resp.Leaderboard[1].Value)
	require.Equal(t, 2, resp.Leaderboard[1].CurrentRank)

	resp, err = f.domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		Period:    statistic.PeriodAll,
		OrderedBy: statistic.OrderedByTask,
		Limit:     1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 1)
	require.Equal(t, f.eng.ID, resp.Leaderboard[0].User.ID)
	require.Equal(t, 3, resp.Leaderboard[0].Value)

	rank, err := f.domain.GetMyRank(ctx, &model.GetMyLeaderboardRankRequest{})
	require.NoError(t, err)
	require.Equal(t, uint64(2), rank.Rank)

	_, err = f.domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Period: statistic.PeriodWeek})
	require.NoError(t, err)

	_, err = f.domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Period: "year"})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = f.domain.GetMyRank(ctx, &model.GetMyLeaderboardRankRequest{OrderedBy: "badge"})
	requireErrorCode(t, err, errorx.BadRequest)

	other := testutil.SampleTenant(t, f.ctx, entity.Tenant{})
	outsider := testutil.SampleUser(t, f.ctx, other.ID, entity.User{Role: entity.RoleAdmin})
	_, err = f.domain.GetLeaderboard(f.as(outsider), &model.GetLeaderboardRequest{TenantID: f.tenant.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)
}

func Test_statisticDomain_Analytics(t *testing.T) {
	f := newStatisticFixture(t)
	ctx := f.as(f.staff)

	_, err := f.domain.GetPointsDistribution(f.as(f.alumni), &model.GetAnalyticsRequest{})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = f.domain.GetOverview(f.as(f.student), &model.GetAnalyticsRequest{})
	requireErrorCode(t, err, errorx.PermissionDenied)

	distribution, err := f.domain.GetPointsDistribution(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, []model.PointBucket{
		{Bucket: "0-99", Members: 4},
		{Bucket: "100-499", Members: 0},
		{Bucket: "500-1499", Members: 1},
		{Bucket: "1500-4999", Members: 0},
		{Bucket: "5000+", Members: 0},
	}, distribution.Buckets)

	completion, err := f.domain.GetTaskCompletion(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Len(t, completion.Tasks, 2)
	for _, task := range completion.Tasks {
		require.Equal(t, "task-1", task.TaskID)
		require.Equal(t, "Attend an event", task.TaskTitle)
		switch task.RewardID {
		case f.reward.ID:
			require.Equal(t, f.reward.Title, task.RewardTitle)
			require.Equal(t, int64(1), task.Approved)
			require.Equal(t, int64(0), task.Pending)
		case f.pending.ID:
			require.Equal(t, int64(0), task.Approved)
			require.Equal(t, int64(1), task.Pending)
		default:
			t.Fatalf("unexpected reward %s", task.RewardID)
		}
	}

	claims, err := f.domain.GetRewardClaims(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, []model.RewardClaim{
		{RewardID: f.reward.ID, Title: f.reward.Title, Claims: 1, Spent: 5},
	}, claims.Rewards)

	departments, err := f.domain.GetDepartments(ctx, &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, []model.DepartmentStatistic{
		{Department: "Engineering", Members: 1, TotalPoints: 700, Tasks: 3},
		{Department: "", Members: 4, TotalPoints: 10, Tasks: 1},
	}, departments.Departments)

	overview, err := f.domain.GetOverview(f.as(f.admin), &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, distribution.Buckets, overview.Buckets)
	require.Len(t, overview.Tasks, 2)
	require.Equal(t, claims.Rewards, overview.Rewards)
	require.Equal(t, departments.Departments, overview.Departments)
}

func Test_statisticDomain_GetUserHistory(t *testing.T) {
	f := newStatisticFixture(t)

	_, err := f.domain.GetUserHistory(f.as(f.alumni), &model.GetUserHistoryRequest{UserID: f.eng.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	history, err := f.domain.GetUserHistory(f.as(f.admin), &model.GetUserHistoryRequest{UserID: f.eng.ID})
	require.NoError(t, err)
	require.Len(t, history.Activities, 1)
	require.Equal(t, f.pending.ID, history.Activities[0].RewardID)
	require.Equal(t, string(entity.ActivityPendingVerification), history.Activities[0].Status)

	history, err = f.domain.GetUserHistory(f.as(f.staff), &model.GetUserHistoryRequest{UserID: f.alumni.ID})
	require.NoError(t, err)
	require.Len(t, history.Activities, 1)
	require.Equal(t, string(entity.ActivityClaimed), history.Activities[0].Status)
}
