package testutil

import (
	"context"
	"reflect"
	"testing"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/crypto"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// SampleTenant creates an active tenant with a random handle. The sample can
// be overwritten by non-zero fields of init.
func SampleTenant(t *testing.T, ctx context.Context, init entity.Tenant) entity.Tenant {
	sample := entity.Tenant{
		Base:   entity.Base{ID: uuid.NewString()},
		Name:   "Tenant " + uuid.NewString()[:8],
		Handle: "t" + uuid.NewString()[:8],
		Active: true,
	}
	overwriteFields(&sample, init)

	require.NoError(t, repository.NewTenantRepository().Create(ctx, &sample))
	return sample
}

// SampleUser creates an alumni of the tenant together with its member record.
// A non-empty init.Password is stored hashed.
func SampleUser(t *testing.T, ctx context.Context, tenantID string, init entity.User) entity.User {
	sample := entity.User{
		Base:     entity.Base{ID: uuid.NewString()},
		TenantID: tenantID,
		Email:    uuid.NewString() + "@alumnet.test",
		Name:     "User " + uuid.NewString()[:8],
		Role:     entity.RoleAlumni,
	}
	overwriteFields(&sample, init)

	if init.Password != "" {
		hashed, err := crypto.HashPassword(init.Password)
		require.NoError(t, err)
		sample.Password = hashed
	}

	require.NoError(t, repository.NewUserRepository().Create(ctx, &sample))
	require.NoError(t, repository.NewMemberRepository().Upsert(ctx, &entity.Member{
		UserID:   sample.ID,
		TenantID: sample.TenantID,
	}))

	return sample
}

// SampleMember overwrites the counters of a member.
func SampleMember(t *testing.T, ctx context.Context, member entity.Member) entity.Member {
	require.NoError(t, xcontext.DB(ctx).Save(&member).Error)
	return member
}

// SampleReward creates an active reward without schedule and one task with
// target 1 worth 10 points.
func SampleReward(t *testing.T, ctx context.Context, tenantID string, init entity.Reward) entity.Reward {
	sample := entity.Reward{
		Base:     entity.Base{ID: uuid.NewString()},
		TenantID: tenantID,
		Title:    "Reward " + uuid.NewString()[:8],
		Category: "general",
		Active:   true,
		Tasks: entity.Array[entity.RewardTask]{
			{ID: "task-1", Type: "event", Title: "Attend an event", Target: 1, Points: 10},
		},
	}
	overwriteFields(&sample, init)

	require.NoError(t, repository.NewRewardRepository().Create(ctx, &sample))
	return sample
}

// SampleBadge creates an active badge of the tenant. An empty tenant id
// creates a global badge.
func SampleBadge(t *testing.T, ctx context.Context, tenantID string, init entity.Badge) entity.Badge {
	sample := entity.Badge{
		Base:         entity.Base{ID: uuid.NewString()},
		Name:         "Badge " + uuid.NewString()[:8],
		CriteriaType: entity.BadgeCriteriaManual,
		Active:       true,
	}
	sample.TenantID.String = tenantID
	sample.TenantID.Valid = tenantID != ""
	overwriteFields(&sample, init)

	require.NoError(t, repository.NewBadgeRepository().Create(ctx, &sample))
	return sample
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		if field := overwriteValue.Field(i); !field.IsZero() {
			originValue.Field(i).Set(field)
		}
	}
}
