package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_rewardDomain_Create(t *testing.T) {
	s := newSuite(t)
	start := time.Now().Add(time.Hour)
	end := start.Add(24 * time.Hour)

	resp, err := s.rewardDomain().Create(s.as(s.admin), &model.CreateRewardRequest{
		Title:    "Campus tour",
		Category: "events",
		Cost:     20,
		StartAt:  &start,
		EndAt:    &end,
		Tasks: []model.RewardTaskInput{
			{Type: "event", Title: "Join", Target: 1, Points: 10},
			{Type: "referral", Title: "Bring a friend", Target: 2, Points: 30},
		},
	})
	require.NoError(t, err)

	reward, err := s.rewardRepo.GetByID(s.ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, s.tenant.ID, reward.TenantID)
	require.Equal(t, s.admin.ID, reward.CreatedBy)
	require.True(t, reward.Active)
	require.Len(t, reward.Tasks, 2)
	require.NotEmpty(t, reward.Tasks[0].ID)
	require.NotEqual(t, reward.Tasks[0].ID, reward.Tasks[1].ID)
}

func Test_rewardDomain_Create_Failed(t *testing.T) {
	s := newSuite(t)
	now := time.Now()
	before := now.Add(-time.Hour)
	task := []model.RewardTaskInput{{Title: "Join", Target: 1, Points: 10}}

	testCases := []struct {
		name string
		user entity.User
		req  *model.CreateRewardRequest
		code errorx.Code
	}{
		{
			name: "staff",
			user: s.staff,
			req:  &model.CreateRewardRequest{Title: "A", Tasks: task},
			code: errorx.PermissionDenied,
		},
		{
			name: "empty title",
			user: s.admin,
			req:  &model.CreateRewardRequest{Title: "  ", Tasks: task},
			code: errorx.BadRequest,
		},
		{
			name: "no task",
			user: s.admin,
			req:  &model.CreateRewardRequest{Title: "A"},
			code: errorx.BadRequest,
		},
		{
			name: "zero target",
			user: s.admin,
			req: &model.CreateRewardRequest{
				Title: "A",
				Tasks: []model.RewardTaskInput{{Title: "Join", Points: 10}},
			},
			code: errorx.BadRequest,
		},
		{
			name: "end before start",
			user: s.admin,
			req:  &model.CreateRewardRequest{Title: "A", Tasks: task, StartAt: &now, EndAt: &before},
			code: errorx.BadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.rewardDomain().Create(s.as(tc.user), tc.req)
			requireErrorCode(t, err, tc.code)
		})
	}
}

func Test_rewardDomain_GetList(t *testing.T) {
	s := newSuite(t)
	available := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{Title: "Mentoring program"})
	upcoming := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{
		Title:   "Reunion",
		StartAt: sql.NullTime{Valid: true, Time: time.Now().Add(time.Hour)},
	})
	inactive := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{Title: "Old reward"})
	require.NoError(t, s.rewardRepo.UpdateByID(s.ctx, inactive.ID, map[string]any{"active": false}))

	otherTenant := testutil.SampleTenant(t, s.ctx, entity.Tenant{})
	testutil.SampleReward(t, s.ctx, otherTenant.ID, entity.Reward{})

	resp, err := s.rewardDomain().GetList(s.as(s.alumni), &model.GetRewardsRequest{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, resp.Rewards, 1)
	require.Equal(t, available.ID, resp.Rewards[0].ID)

	resp, err = s.rewardDomain().GetList(s.as(s.admin), &model.GetRewardsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Rewards, 2)

	resp, err = s.rewardDomain().GetList(s.as(s.admin), &model.GetRewardsRequest{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, resp.Rewards, 3)
	require.Equal(t, int64(3), resp.Total)

	resp, err = s.rewardDomain().GetList(s.as(s.admin), &model.GetRewardsRequest{Q: "reunion"})
	require.NoError(t, err)
	require.Len(t, resp.Rewards, 1)
	require.Equal(t, upcoming.ID, resp.Rewards[0].ID)

	_, err = s.rewardDomain().Get(s.as(s.alumni), &model.GetRewardRequest{ID: upcoming.ID})
	requireErrorCode(t, err, errorx.NotFound)

	got, err := s.rewardDomain().Get(s.as(s.admin), &model.GetRewardRequest{ID: upcoming.ID})
	require.NoError(t, err)
	require.NotNil(t, got.Reward.StartAt)
}

func Test_rewardDomain_UpdateDelete(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{})

	title := "Renamed"
	_, err := s.rewardDomain().Update(s.as(s.admin), &model.UpdateRewardRequest{
		ID:    reward.ID,
		Title: &title,
		Tasks: []model.RewardTask{
			{ID: "task-1", Title: "Attend an event", Target: 1, Points: 10},
			{Title: "Share a post", Target: 1, Points: 5},
		},
	})
	require.NoError(t, err)

	updated, err := s.rewardRepo.GetByID(s.ctx, reward.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Len(t, updated.Tasks, 2)
	require.Equal(t, "task-1", updated.Tasks[0].ID)
	require.NotEmpty(t, updated.Tasks[1].ID)

	empty := " "
	_, err = s.rewardDomain().Update(s.as(s.admin), &model.UpdateRewardRequest{ID: reward.ID, Title: &empty})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = s.rewardDomain().Delete(s.as(s.staff), &model.DeleteRewardRequest{ID: reward.ID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = s.rewardDomain().Delete(s.as(s.admin), &model.DeleteRewardRequest{ID: reward.ID})
	require.NoError(t, err)

	_, err = s.rewardDomain().Get(s.as(s.admin), &model.GetRewardRequest{ID: reward.ID})
	requireErrorCode(t, err, errorx.NotFound)

	// Soft deleted rewards stay readable for their activities.
	deleted, err := s.rewardRepo.GetByIDUnscoped(s.ctx, reward.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", deleted.Title)
}
