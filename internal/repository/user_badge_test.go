package repository_test

import (
	"testing"
	"time"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newUserBadge(user entity.User, badge entity.Badge) *entity.UserBadge {
	return &entity.UserBadge{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		BadgeID:   badge.ID,
		AwardedAt: time.Now(),
		AwardedBy: "admin",
	}
}

func TestUserBadgeRepository_Create(t *testing.T) {
	ctx := testutil.NewMockContext()
	tenant := testutil.SampleTenant(t, ctx, entity.Tenant{})
	user := testutil.SampleUser(t, ctx, tenant.ID, entity.User{})
	badge := testutil.SampleBadge(t, ctx, tenant.ID, entity.Badge{})

	userBadgeRepo := repository.NewUserBadgeRepository()
	badgeRepo := repository.NewBadgeRepository()

	require.NoError(t, userBadgeRepo.Create(ctx, newUserBadge(user, badge)))

	// The same pair fails at the unique index and the counter is untouched.
	require.Error(t, userBadgeRepo.Create(ctx, newUserBadge(user, badge)))

	got, err := badgeRepo.GetByID(ctx, badge.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.CurrentRecipients)

	var rows int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.UserBadge{}).
		Where("user_id=? AND badge_id=?", user.ID, badge.ID).Count(&rows).Error)
	require.Equal(t, int64(1), rows)

	owned, err := userBadgeRepo.Get(ctx, user.ID, badge.ID)
	require.NoError(t, err)
	require.NoError(t, userBadgeRepo.Delete(ctx, owned))

	got, err = badgeRepo.GetByID(ctx, badge.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), got.CurrentRecipients)
}

func TestUserBadgeRepository_Create_Full(t *testing.T) {
	ctx := testutil.NewMockContext()
	tenant := testutil.SampleTenant(t, ctx, entity.Tenant{})
	first := testutil.SampleUser(t, ctx, tenant.ID, entity.User{})
	second := testutil.SampleUser(t, ctx, tenant.ID, entity.User{})
	badge := testutil.SampleBadge(t, ctx, tenant.ID, entity.Badge{MaxRecipients: 1})

	userBadgeRepo := repository.NewUserBadgeRepository()
	require.NoError(t, userBadgeRepo.Create(ctx, newUserBadge(first, badge)))

	// The insert is rolled back together with the refused increment.
	require.ErrorIs(t, userBadgeRepo.Create(ctx, newUserBadge(second, badge)), entity.ErrBadgeFull)

	_, err := userBadgeRepo.Get(ctx, second.ID, badge.ID)
	require.Error(t, err)

	got, err := repository.NewBadgeRepository().GetByID(ctx, badge.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.CurrentRecipients)
}
