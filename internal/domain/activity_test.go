package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_activityDomain_ProgressVerifyClaim(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{
		Cost:                 30,
		RequiresVerification: true,
		Tasks: entity.Array[entity.RewardTask]{
			{ID: "volunteer", Title: "Volunteer hours", Target: 10, Points: 50},
		},
	})

	alumniCtx := s.as(s.alumni)
	activityDomain := s.activityDomain()

	resp, err := activityDomain.RecordProgress(alumniCtx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "volunteer", Amount: 5,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.ActivityInProgress), resp.Activity.Status)
	require.Equal(t, int64(5), resp.Activity.Amount)

	resp, err = activityDomain.RecordProgress(alumniCtx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "volunteer", Amount: 5,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.ActivityPendingVerification), resp.Activity.Status)
	require.Equal(t, int64(10), resp.Activity.Amount)
	require.NotNil(t, resp.Activity.SubmittedAt)
	activityID := resp.Activity.ID

	// Nothing is credited before the approval.
	require.Equal(t, uint64(0), s.member(t, s.alumni).Points)

	verified, err := s.verificationDomain().Verify(s.as(s.staff), &model.VerifyTaskRequest{
		ID: activityID, Action: "approve",
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.ActivityApproved), verified.Activity.Status)
	require.Equal(t, uint64(50), verified.Activity.Points)
	require.Equal(t, s.staff.ID, verified.Activity.VerifierID)

	member := s.member(t, s.alumni)
	require.Equal(t, uint64(50), member.Points)
	require.Equal(t, uint64(50), member.TotalPoints)
	require.Equal(t, uint64(1), member.CompletedTasks)

	changes := s.leaderboard.Changes()
	require.Len(t, changes, 1)
	require.Equal(t, uint64(50), changes[0].Points)
	require.Equal(t, int64(1), changes[0].Tasks)
	require.Len(t, s.notifier.MessagesOf(common.NotificationTaskApproved), 1)

	claimed, err := s.redemptionDomain().Claim(alumniCtx, &model.ClaimRewardRequest{RewardID: reward.ID})
	require.NoError(t, err)
	require.Len(t, claimed.Activities, 1)
	require.Equal(t, string(entity.ActivityClaimed), claimed.Activities[0].Status)
	require.NotNil(t, claimed.Activities[0].ClaimedAt)
	require.NotEmpty(t, claimed.Redemption.VoucherCode)
	require.Equal(t, uint64(30), claimed.Redemption.Cost)
	require.Equal(t, s.alumni.ID, claimed.Redemption.IssuerID)

	member = s.member(t, s.alumni)
	require.Equal(t, uint64(20), member.Points)
	require.Equal(t, uint64(50), member.TotalPoints)
	require.Equal(t, uint64(1), member.Redemptions)

	// A second claim neither succeeds nor deducts again.
	_, err = s.redemptionDomain().Claim(alumniCtx, &model.ClaimRewardRequest{RewardID: reward.ID})
	requireErrorCode(t, err, errorx.BadRequest)
	require.Equal(t, uint64(20), s.member(t, s.alumni).Points)

	// The amount is frozen once the reward was claimed.
	_, err = activityDomain.RecordProgress(alumniCtx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "volunteer", Amount: 1,
	})
	requireErrorCode(t, err, errorx.BadRequest)

	activity, err := s.activityRepo.GetByID(s.ctx, activityID)
	require.NoError(t, err)
	require.Equal(t, int64(10), activity.Amount)
	require.Equal(t, entity.ActivityClaimed, activity.Status)
}

func Test_activityDomain_RecordProgress_AutoApprove(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{})

	resp, err := s.activityDomain().RecordProgress(s.as(s.alumni), &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "task-1", Amount: 3,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.ActivityApproved), resp.Activity.Status)
	require.Equal(t, uint64(10), resp.Activity.Points)
	require.Empty(t, resp.Activity.VerifierID)
	require.Equal(t, uint64(10), s.member(t, s.alumni).Points)
}

func Test_activityDomain_RecordProgress_Failed(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{RequiresVerification: true})

	inactive := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{})
	require.NoError(t, s.rewardRepo.UpdateByID(s.ctx, inactive.ID, map[string]any{"active": false}))

	upcoming := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{
		StartAt: sql.NullTime{Valid: true, Time: time.Now().Add(time.Hour)},
	})

	expired := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{
		EndAt: sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
	})

	otherTenant := testutil.SampleTenant(t, s.ctx, entity.Tenant{})
	foreign := testutil.SampleReward(t, s.ctx, otherTenant.ID, entity.Reward{})

	tests := []struct {
		name string
		user entity.User
		req  *model.RecordProgressRequest
		code errorx.Code
	}{
		{
			name: "non positive amount",
			user: s.alumni,
			req:  &model.RecordProgressRequest{RewardID: reward.ID, TaskID: "task-1", Amount: 0},
			code: errorx.BadRequest,
		},
		{
			name: "unknown reward",
			user: s.alumni,
			req:  &model.RecordProgressRequest{RewardID: "unknown", TaskID: "task-1", Amount: 1},
			code: errorx.NotFound,
		},
		{
			name: "reward of another tenant",
			user: s.alumni,
			req:  &model.RecordProgressRequest{RewardID: foreign.ID, TaskID: "task-1", Amount: 1},
			code: errorx.NotFound,
		},
		{
			name: "inactive reward",
			user: s.alumni,
			req:  &model.RecordProgressRequest{RewardID: inactive.ID, TaskID: "task-1", Amount: 1},
			code: errorx.BadRequest,
		},
		{
			name: "reward not started",
			user: s.alumni,
			req:  &model.RecordProgressRequest{RewardID: upcoming.ID, TaskID: "task-1", Amount: 1},
			code: errorx.BadRequest,
		},
		{
			name: "reward ended",
			user: s.alumni,
			req:  &model.RecordProgressRequest{RewardID: expired.ID, TaskID: "task-1", Amount: 1},
			code: errorx.BadRequest,
		},
		{
			name: "unknown task",
			user: s.alumni,
			req:  &model.RecordProgressRequest{RewardID: reward.ID, TaskID: "unknown", Amount: 1},
			code: errorx.NotFound,
		},
		{
			name: "blocked role",
			user: s.student,
			req:  &model.RecordProgressRequest{RewardID: reward.ID, TaskID: "task-1", Amount: 1},
			code: errorx.PermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.activityDomain().RecordProgress(s.as(tt.user), tt.req)
			requireErrorCode(t, err, tt.code)
		})
	}
}

func Test_activityDomain_RecordProgress_WhilePending(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{RequiresVerification: true})
	ctx := s.as(s.alumni)

	resp, err := s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "task-1", Amount: 2,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.ActivityPendingVerification), resp.Activity.Status)

	_, err = s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "task-1", Amount: 2,
	})
	requireErrorCode(t, err, errorx.BadRequest)

	activity, err := s.activityRepo.GetByID(s.ctx, resp.Activity.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), activity.Amount)
}

func Test_activityDomain_Resubmit(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{RequiresVerification: true})
	ctx := s.as(s.alumni)

	resp, err := s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "task-1", Amount: 1,
	})
	require.NoError(t, err)
	activityID := resp.Activity.ID

	// Only rejected tasks can be resubmitted.
	_, err = s.activityDomain().Resubmit(ctx, &model.ResubmitTaskRequest{ID: activityID})
	requireErrorCode(t, err, errorx.BadRequest)

	rejected, err := s.verificationDomain().Verify(s.as(s.staff), &model.VerifyTaskRequest{
		ID: activityID, Action: "reject", Reason: "Missing proof",
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.ActivityRejected), rejected.Activity.Status)
	require.Equal(t, "Missing proof", rejected.Activity.Reason)
	require.Len(t, s.notifier.MessagesOf(common.NotificationTaskRejected), 1)

	// A rejected task is not progressable.
	_, err = s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "task-1", Amount: 1,
	})
	requireErrorCode(t, err, errorx.BadRequest)

	other := testutil.SampleUser(t, s.ctx, s.tenant.ID, entity.User{})
	_, err = s.activityDomain().Resubmit(s.as(other), &model.ResubmitTaskRequest{ID: activityID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = s.activityDomain().Resubmit(s.as(s.staff), &model.ResubmitTaskRequest{ID: activityID})
	requireErrorCode(t, err, errorx.PermissionDenied)

	resubmitted, err := s.activityDomain().Resubmit(ctx, &model.ResubmitTaskRequest{ID: activityID})
	require.NoError(t, err)
	require.Equal(t, string(entity.ActivityPendingVerification), resubmitted.Activity.Status)
	require.Empty(t, resubmitted.Activity.Reason)
	require.Empty(t, resubmitted.Activity.VerifierID)
	require.Nil(t, resubmitted.Activity.VerifiedAt)

	_, err = s.activityDomain().Resubmit(s.as(other), &model.ResubmitTaskRequest{ID: "unknown"})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_activityDomain_GetMyActivities(t *testing.T) {
	s := newSuite(t)
	first := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{RequiresVerification: true})
	second := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{})
	ctx := s.as(s.alumni)

	for _, reward := range []entity.Reward{first, second} {
		_, err := s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
			RewardID: reward.ID, TaskID: "task-1", Amount: 1,
		})
		require.NoError(t, err)
	}

	all, err := s.activityDomain().GetMyActivities(ctx, &model.GetMyActivitiesRequest{})
	require.NoError(t, err)
	require.Len(t, all.Activities, 2)
	require.Equal(t, int64(2), all.Total)

	pending, err := s.activityDomain().GetMyActivities(ctx, &model.GetMyActivitiesRequest{
		Status: string(entity.ActivityPendingVerification),
	})
	require.NoError(t, err)
	require.Len(t, pending.Activities, 1)
	require.Equal(t, first.ID, pending.Activities[0].RewardID)

	_, err = s.activityDomain().GetMyActivities(ctx, &model.GetMyActivitiesRequest{Status: "done"})
	requireErrorCode(t, err, errorx.BadRequest)

	ofReward, err := s.activityDomain().GetMyRewardActivities(ctx, &model.GetMyRewardActivitiesRequest{
		RewardID: second.ID,
	})
	require.NoError(t, err)
	require.Len(t, ofReward.Activities, 1)
	require.Equal(t, string(entity.ActivityApproved), ofReward.Activities[0].Status)

	// Other users do not see these activities.
	mine, err := s.activityDomain().GetMyActivities(s.as(s.staff), &model.GetMyActivitiesRequest{})
	require.NoError(t, err)
	require.Empty(t, mine.Activities)
}
