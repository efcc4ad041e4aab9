package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alumnet-lab/backend/internal/domain/cron"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}
	s.loadRepos()

	cfg := xcontext.Configs(s.ctx).Cron
	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewExpireInvitationCronJob(s.invitationRepo, cfg.InvitationExpiryInterval))
	cronJobManager.Register(cron.NewRecomputeFundCronJob(s.fundRepo, cfg.FundRecomputeInterval))

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cronJobManager.Cancel(s.ctx)
	}()

	xcontext.Logger(s.ctx).Infof("Cron jobs start")
	cronJobManager.Start(s.ctx)
	xcontext.Logger(s.ctx).Infof("Cron jobs stop")
	return nil
}
