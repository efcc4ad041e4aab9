package domain

import (
	"database/sql"
	"sync/atomic"
	"testing"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_redemptionDomain_Claim_RequiresApproval(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{
		Tasks: entity.Array[entity.RewardTask]{
			{ID: "a", Title: "A", Target: 1, Points: 5},
			{ID: "b", Title: "B", Target: 2, Points: 5},
		},
	})
	ctx := s.as(s.alumni)

	// Nothing done yet.
	_, err := s.redemptionDomain().Claim(ctx, &model.ClaimRewardRequest{RewardID: reward.ID})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "a", Amount: 1,
	})
	require.NoError(t, err)

	_, err = s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "b", Amount: 1,
	})
	require.NoError(t, err)

	// Task b is still in progress.
	_, err = s.redemptionDomain().Claim(ctx, &model.ClaimRewardRequest{RewardID: reward.ID})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "b", Amount: 1,
	})
	require.NoError(t, err)

	resp, err := s.redemptionDomain().Claim(ctx, &model.ClaimRewardRequest{
		RewardID: reward.ID, VoucherCode: "GIFT-2024",
	})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 2)
	require.Equal(t, "GIFT-2024", resp.Redemption.VoucherCode)
	for _, a := range resp.Activities {
		require.Equal(t, string(entity.ActivityClaimed), a.Status)
	}
}

func Test_redemptionDomain_Claim_InsufficientPoints(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{Cost: 100})
	ctx := s.as(s.alumni)

	_, err := s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "task-1", Amount: 1,
	})
	require.NoError(t, err)

	_, err = s.redemptionDomain().Claim(ctx, &model.ClaimRewardRequest{RewardID: reward.ID})
	requireErrorCode(t, err, errorx.BadRequest)

	// The failed claim is rolled back entirely.
	activity, err := s.activityRepo.Get(s.ctx, s.alumni.ID, reward.ID, "task-1")
	require.NoError(t, err)
	require.Equal(t, entity.ActivityApproved, activity.Status)
	require.False(t, activity.ClaimedAt.Valid)

	member := s.member(t, s.alumni)
	require.Equal(t, uint64(10), member.Points)
	require.Equal(t, uint64(0), member.Redemptions)

	redemptions, err := s.redemptionDomain().GetList(ctx, &model.GetRedemptionsRequest{})
	require.NoError(t, err)
	require.Empty(t, redemptions.Redemptions)
}

func Test_redemptionDomain_Claim_Issuer(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{})
	ctx := s.as(s.alumni)

	_, err := s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "task-1", Amount: 1,
	})
	require.NoError(t, err)

	_, err = s.redemptionDomain().Claim(ctx, &model.ClaimRewardRequest{
		RewardID: reward.ID, IssuerID: s.staff.ID,
	})
	requireErrorCode(t, err, errorx.PermissionDenied)
}

func Test_redemptionDomain_GetList(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{})

	for _, user := range []entity.User{s.alumni, s.staff} {
		ctx := s.as(user)
		_, err := s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
			RewardID: reward.ID, TaskID: "task-1", Amount: 1,
		})
		require.NoError(t, err)

		_, err = s.redemptionDomain().Claim(ctx, &model.ClaimRewardRequest{RewardID: reward.ID})
		require.NoError(t, err)
	}

	// Alumni only see their own redemptions, even when asking for others.
	mine, err := s.redemptionDomain().GetList(s.as(s.alumni), &model.GetRedemptionsRequest{UserID: s.staff.ID})
	require.NoError(t, err)
	require.Len(t, mine.Redemptions, 1)
	require.Equal(t, s.alumni.ID, mine.Redemptions[0].UserID)

	all, err := s.redemptionDomain().GetList(s.as(s.admin), &model.GetRedemptionsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Redemptions, 2)
	require.Equal(t, int64(2), all.Total)
}

func Test_redemptionDomain_Claim_CommitFailed(t *testing.T) {
	s := newSuite(t)
	reward := testutil.SampleReward(t, s.ctx, s.tenant.ID, entity.Reward{Cost: 5})
	ctx := s.as(s.alumni)

	_, err := s.activityDomain().RecordProgress(ctx, &model.RecordProgressRequest{
		RewardID: reward.ID, TaskID: "task-1", Amount: 1,
	})
	require.NoError(t, err)

	// Finish the SQL transaction behind gorm's back once the claimed
	// activities are read, so that the final commit fails.
	var armed atomic.Bool
	err = xcontext.DB(s.ctx).Callback().Query().After("gorm:query").Register("test:finish_tx", func(db *gorm.DB) {
		sqlTx, inTx := db.Statement.ConnPool.(*sql.Tx)
		_, isList := db.Statement.Dest.(*[]entity.UserTaskActivity)
		if armed.Load() && inTx && isList {
			armed.Store(false)
			_ = sqlTx.Rollback()
		}
	})
	require.NoError(t, err)

	armed.Store(true)
	_, err = s.redemptionDomain().Claim(ctx, &model.ClaimRewardRequest{RewardID: reward.ID})
	requireErrorCode(t, err, errorx.Internal)
	require.False(t, armed.Load())

	activity, err := s.activityRepo.Get(s.ctx, s.alumni.ID, reward.ID, "task-1")
	require.NoError(t, err)
	require.Equal(t, entity.ActivityApproved, activity.Status)

	member := s.member(t, s.alumni)
	require.Equal(t, uint64(10), member.Points)
	require.Equal(t, uint64(0), member.Redemptions)
	require.Empty(t, s.notifier.MessagesOf(common.NotificationRewardClaimed))
}
