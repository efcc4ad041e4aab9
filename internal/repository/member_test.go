package repository_test

import (
	"testing"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMemberRepository_Points(t *testing.T) {
	ctx := testutil.NewMockContext()
	tenant := testutil.SampleTenant(t, ctx, entity.Tenant{})
	user := testutil.SampleUser(t, ctx, tenant.ID, entity.User{})
	repo := repository.NewMemberRepository()

	// Upsert keeps the counters of an existing member.
	require.NoError(t, repo.IncreasePoints(ctx, user.ID, tenant.ID, 30, true))
	require.NoError(t, repo.Upsert(ctx, &entity.Member{UserID: user.ID, TenantID: tenant.ID}))
	require.NoError(t, repo.IncreasePoints(ctx, user.ID, tenant.ID, 20, false))

	member, err := repo.Get(ctx, user.ID, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(50), member.Points)
	require.Equal(t, uint64(50), member.TotalPoints)
	require.Equal(t, uint64(1), member.CompletedTasks)

	require.NoError(t, repo.DecreasePoints(ctx, user.ID, tenant.ID, 40))
	require.ErrorIs(t, repo.DecreasePoints(ctx, user.ID, tenant.ID, 11), gorm.ErrRecordNotFound)
	require.NoError(t, repo.IncreaseRedemptions(ctx, user.ID, tenant.ID))

	member, err = repo.Get(ctx, user.ID, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(10), member.Points)
	require.Equal(t, uint64(50), member.TotalPoints)
	require.Equal(t, uint64(1), member.Redemptions)

	require.ErrorIs(t, repo.IncreasePoints(ctx, "unknown", tenant.ID, 1, false), gorm.ErrRecordNotFound)
}

func TestMemberRepository_PointsDistribution(t *testing.T) {
	ctx := testutil.NewMockContext()
	tenant := testutil.SampleTenant(t, ctx, entity.Tenant{})
	other := testutil.SampleTenant(t, ctx, entity.Tenant{})
	for _, points := range []uint64{0, 9, 10, 250} {
		user := testutil.SampleUser(t, ctx, tenant.ID, entity.User{})
		testutil.SampleMember(t, ctx, entity.Member{UserID: user.ID, TenantID: tenant.ID, TotalPoints: points})
	}
	testutil.SampleUser(t, ctx, other.ID, entity.User{})

	buckets, err := repository.NewMemberRepository().PointsDistribution(ctx, tenant.ID, []uint64{0, 10, 100})
	require.NoError(t, err)
	require.Equal(t, []repository.PointBucket{
		{Bucket: "0-9", Members: 2},
		{Bucket: "10-99", Members: 1},
		{Bucket: "100+", Members: 1},
	}, buckets)
}
