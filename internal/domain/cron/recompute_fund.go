package cron

import (
	"context"
	"time"

	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

// RecomputeFundCronJob fixes the total raised of every fund from its
// campaigns.
type RecomputeFundCronJob struct {
	fundRepo repository.FundRepository
	interval time.Duration
}

func NewRecomputeFundCronJob(fundRepo repository.FundRepository, interval time.Duration) *RecomputeFundCronJob {
	return &RecomputeFundCronJob{fundRepo: fundRepo, interval: interval}
}

func (job *RecomputeFundCronJob) Name() string {
	return "recompute_fund"
}

func (job *RecomputeFundCronJob) Do(ctx context.Context) {
	funds, err := job.fundRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get all funds: %v", err)
		return
	}

	for _, f := range funds {
		if err := job.fundRepo.RecomputeTotal(ctx, f.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot recompute fund %s: %v", f.ID, err)
		}
	}
}

func (job *RecomputeFundCronJob) RunNow() bool {
	return false
}

func (job *RecomputeFundCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
