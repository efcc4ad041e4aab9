package repository_test

import (
	"testing"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFundRepository_RecomputeTotal(t *testing.T) {
	ctx := testutil.NewMockContext()
	tenant := testutil.SampleTenant(t, ctx, entity.Tenant{})
	fundRepo := repository.NewFundRepository()
	campaignRepo := repository.NewCampaignRepository()

	fund := entity.Fund{
		Base:     entity.Base{ID: uuid.NewString()},
		TenantID: tenant.ID,
		Name:     "Scholarship",
		Status:   entity.FundActive,
	}
	require.NoError(t, fundRepo.Create(ctx, &fund))

	// A fund without campaign raised nothing.
	require.NoError(t, fundRepo.RecomputeTotal(ctx, fund.ID))

	for _, raised := range []int64{150, 350} {
		campaign := entity.Campaign{
			Base:         entity.Base{ID: uuid.NewString()},
			TenantID:     tenant.ID,
			FundID:       fund.ID,
			Title:        "Campaign",
			GoalAmount:   1000,
			RaisedAmount: raised,
			Status:       entity.CampaignActive,
		}
		require.NoError(t, campaignRepo.Create(ctx, &campaign))
	}

	require.NoError(t, fundRepo.RecomputeTotal(ctx, fund.ID))
	got, err := fundRepo.GetByID(ctx, fund.ID)
	require.NoError(t, err)
	require.Equal(t, int64(500), got.TotalRaised)

	funds, total, err := fundRepo.GetList(ctx, tenant.ID, entity.FundActive, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, funds, 1)

	require.NoError(t, fundRepo.DeleteByID(ctx, fund.ID))
	all, err := fundRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
