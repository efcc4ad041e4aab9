package cron_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alumnet-lab/backend/internal/domain/cron"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs atomic.Int32
}

func (j *countingJob) Name() string       { return "counting" }
func (j *countingJob) Do(context.Context) { j.runs.Add(1) }
func (j *countingJob) RunNow() bool       { return true }
func (j *countingJob) Next() time.Time    { return time.Now().Add(time.Hour) }

func TestCronJobManager(t *testing.T) {
	ctx := testutil.NewMockContext()
	job := &countingJob{}

	manager := cron.NewCronJobManager()
	manager.Register(job)

	stopped := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return job.runs.Load() == 1 }, time.Second, 10*time.Millisecond)

	// The job runs once, then waits for its next schedule.
	manager.Cancel(ctx)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("manager didn't stop")
	}
	require.Equal(t, int32(1), job.runs.Load())
}

type panickingJob struct {
	countingJob
}

func (j *panickingJob) Do(context.Context) {
	j.runs.Add(1)
	panic("boom")
}

func TestCronJobManager_Panic(t *testing.T) {
	ctx := testutil.NewMockContext()
	job := &panickingJob{}

	manager := cron.NewCronJobManager()
	manager.Register(job)

	stopped := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(stopped)
	}()

	// A panicking job doesn't bring the manager down.
	require.Eventually(t, func() bool { return job.runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	manager.Cancel(ctx)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("manager didn't stop")
	}
}

func TestExpireInvitationCronJob(t *testing.T) {
	ctx := testutil.NewMockContext()
	tenant := testutil.SampleTenant(t, ctx, entity.Tenant{})
	repo := repository.NewInvitationRepository()

	invitation := entity.Invitation{
		Base:      entity.Base{ID: uuid.NewString()},
		TenantID:  tenant.ID,
		Email:     "late@alumnet.test",
		Role:      entity.RoleAlumni,
		Token:     uuid.NewString(),
		Status:    entity.InvitationSent,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(ctx, &invitation))

	job := cron.NewExpireInvitationCronJob(repo, time.Minute)
	require.Equal(t, "expire_invitation", job.Name())
	require.True(t, job.RunNow())
	require.WithinDuration(t, time.Now().Add(time.Minute), job.Next(), time.Second)

	job.Do(ctx)

	got, err := repo.GetByID(ctx, invitation.ID)
	require.NoError(t, err)
	require.Equal(t, entity.InvitationExpired, got.Status)
}

func TestRecomputeFundCronJob(t *testing.T) {
	ctx := testutil.NewMockContext()
	tenant := testutil.SampleTenant(t, ctx, entity.Tenant{})
	fundRepo := repository.NewFundRepository()

	fund := entity.Fund{
		Base:        entity.Base{ID: uuid.NewString()},
		TenantID:    tenant.ID,
		Name:        "Library",
		Status:      entity.FundActive,
		TotalRaised: 999,
	}
	require.NoError(t, fundRepo.Create(ctx, &fund))
	require.NoError(t, repository.NewCampaignRepository().Create(ctx, &entity.Campaign{
		Base:         entity.Base{ID: uuid.NewString()},
		TenantID:     tenant.ID,
		FundID:       fund.ID,
		Title:        "Books",
		GoalAmount:   100,
		RaisedAmount: 40,
		Status:       entity.CampaignActive,
	}))

	job := cron.NewRecomputeFundCronJob(fundRepo, time.Hour)
	require.False(t, job.RunNow())
	job.Do(ctx)

	got, err := fundRepo.GetByID(ctx, fund.ID)
	require.NoError(t, err)
	require.Equal(t, int64(40), got.TotalRaised)
}
