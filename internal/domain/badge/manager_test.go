package badge_test

import (
	"context"
	"testing"

	"github.com/alumnet-lab/backend/internal/domain/badge"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newManager() (*badge.Manager, repository.UserBadgeRepository) {
	badgeRepo := repository.NewBadgeRepository()
	memberRepo := repository.NewMemberRepository()
	userBadgeRepo := repository.NewUserBadgeRepository()

	return badge.NewManager(
		userBadgeRepo,
		badge.NewPointsBadgeScanner(badgeRepo, memberRepo),
		badge.NewTasksBadgeScanner(badgeRepo, memberRepo),
	), userBadgeRepo
}

func Test_counterBadgeScanner(t *testing.T) {
	ctx := testutil.NewMockContext()
	tenant := testutil.SampleTenant(t, ctx, entity.Tenant{})
	other := testutil.SampleTenant(t, ctx, entity.Tenant{})
	user := testutil.SampleUser(t, ctx, tenant.ID, entity.User{})
	testutil.SampleMember(t, ctx, entity.Member{
		UserID:         user.ID,
		TenantID:       tenant.ID,
		Points:         20,
		TotalPoints:    120,
		CompletedTasks: 2,
	})

	reached := testutil.SampleBadge(t, ctx, tenant.ID, entity.Badge{
		CriteriaType: entity.BadgeCriteriaPoints, CriteriaValue: 100,
	})
	global := testutil.SampleBadge(t, ctx, "", entity.Badge{
		CriteriaType: entity.BadgeCriteriaPoints, CriteriaValue: 50,
	})
	testutil.SampleBadge(t, ctx, tenant.ID, entity.Badge{
		CriteriaType: entity.BadgeCriteriaPoints, CriteriaValue: 500,
	})
	testutil.SampleBadge(t, ctx, other.ID, entity.Badge{
		CriteriaType: entity.BadgeCriteriaPoints, CriteriaValue: 10,
	})
	tasks := testutil.SampleBadge(t, ctx, tenant.ID, entity.Badge{
		CriteriaType: entity.BadgeCriteriaTasks, CriteriaValue: 2,
	})

	badgeRepo := repository.NewBadgeRepository()
	memberRepo := repository.NewMemberRepository()

	// Lifetime points count, not the balance.
	badges, err := badge.NewPointsBadgeScanner(badgeRepo, memberRepo).Scan(ctx, user.ID, tenant.ID)
	require.NoError(t, err)
	require.Len(t, badges, 2)
	require.Equal(t, global.ID, badges[0].ID)
	require.Equal(t, reached.ID, badges[1].ID)

	badges, err = badge.NewTasksBadgeScanner(badgeRepo, memberRepo).Scan(ctx, user.ID, tenant.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	require.Equal(t, tasks.ID, badges[0].ID)

	// A user without member record has no badge.
	badges, err = badge.NewPointsBadgeScanner(badgeRepo, memberRepo).Scan(ctx, user.ID, other.ID)
	require.NoError(t, err)
	require.Empty(t, badges)
}

func TestManager_ScanAndGive(t *testing.T) {
	ctx := testutil.NewMockContext()
	tenant := testutil.SampleTenant(t, ctx, entity.Tenant{})
	user := testutil.SampleUser(t, ctx, tenant.ID, entity.User{})
	another := testutil.SampleUser(t, ctx, tenant.ID, entity.User{})
	for _, u := range []entity.User{user, another} {
		testutil.SampleMember(t, ctx, entity.Member{
			UserID:         u.ID,
			TenantID:       tenant.ID,
			TotalPoints:    100,
			CompletedTasks: 1,
		})
	}

	points := testutil.SampleBadge(t, ctx, tenant.ID, entity.Badge{
		CriteriaType:        entity.BadgeCriteriaPoints,
		CriteriaValue:       100,
		CriteriaDescription: "Earn 100 points",
	})
	limited := testutil.SampleBadge(t, ctx, tenant.ID, entity.Badge{
		CriteriaType:  entity.BadgeCriteriaTasks,
		CriteriaValue: 1,
		MaxRecipients: 1,
	})

	manager, userBadgeRepo := newManager()
	require.ElementsMatch(t,
		[]entity.BadgeCriteriaType{entity.BadgeCriteriaPoints, entity.BadgeCriteriaTasks},
		manager.GetAllCriteria())

	awarded, err := manager.WithCriteria(entity.BadgeCriteriaPoints, entity.BadgeCriteriaTasks).
		ScanAndGive(ctx, user.ID, tenant.ID)
	require.NoError(t, err)
	require.Len(t, awarded, 2)
	require.Equal(t, points.ID, awarded[0].ID)
	require.Equal(t, limited.ID, awarded[1].ID)

	ub, err := userBadgeRepo.Get(ctx, user.ID, points.ID)
	require.NoError(t, err)
	require.Equal(t, badge.SystemAwarder, ub.AwardedBy)
	require.Equal(t, "Earn 100 points", ub.Reason)
	require.Equal(t, tenant.ID, ub.TenantID.String)

	// Owned badges are not given twice.
	awarded, err = manager.WithCriteria(manager.GetAllCriteria()...).ScanAndGive(ctx, user.ID, tenant.ID)
	require.NoError(t, err)
	require.Empty(t, awarded)

	// The limited badge is full, the other user only gets the points badge.
	awarded, err = manager.WithCriteria(manager.GetAllCriteria()...).ScanAndGive(ctx, another.ID, tenant.ID)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	require.Equal(t, points.ID, awarded[0].ID)

	_, err = userBadgeRepo.Get(ctx, another.ID, limited.ID)
	require.Error(t, err)

	full, err := repository.NewBadgeRepository().GetByID(ctx, limited.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), full.CurrentRecipients)
}

func TestManager_ScanAndGive_Failed(t *testing.T) {
	ctx := testutil.NewMockContext()
	userBadgeRepo := repository.NewUserBadgeRepository()

	manager := badge.NewManager(userBadgeRepo, &testutil.MockBadgeScanner{
		CriteriaValue: entity.BadgeCriteriaPoints,
		ScanFunc: func(ctx context.Context, userID, tenantID string) ([]entity.Badge, error) {
			return nil, errorx.New(errorx.Unavailable, "Scanner is down")
		},
	})

	_, err := manager.WithCriteria(entity.BadgeCriteriaTasks).ScanAndGive(ctx, "user", "tenant")
	require.Error(t, err)

	_, err = manager.WithCriteria(entity.BadgeCriteriaPoints).ScanAndGive(ctx, "user", "tenant")
	require.ErrorIs(t, err, errorx.Error{Code: errorx.Unavailable})
}
