package cron

import (
	"context"
	"time"

	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

// ExpireInvitationCronJob marks invitations which passed their expiry as
// expired.
type ExpireInvitationCronJob struct {
	invitationRepo repository.InvitationRepository
	interval       time.Duration
}

func NewExpireInvitationCronJob(
	invitationRepo repository.InvitationRepository,
	interval time.Duration,
) *ExpireInvitationCronJob {
	return &ExpireInvitationCronJob{invitationRepo: invitationRepo, interval: interval}
}

func (job *ExpireInvitationCronJob) Name() string {
	return "expire_invitation"
}

func (job *ExpireInvitationCronJob) Do(ctx context.Context) {
	n, err := job.invitationRepo.ExpireBefore(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot expire invitations: %v", err)
		return
	}

	if n > 0 {
		xcontext.Logger(ctx).Infof("Expired %d invitations", n)
	}
}

func (job *ExpireInvitationCronJob) RunNow() bool {
	return true
}

func (job *ExpireInvitationCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
