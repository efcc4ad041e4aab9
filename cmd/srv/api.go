package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/domain"
	"github.com/alumnet-lab/backend/internal/domain/badge"
	"github.com/alumnet-lab/backend/internal/domain/notification"
	"github.com/alumnet-lab/backend/internal/domain/statistic"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/middleware"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/kafka"
	"github.com/alumnet-lab/backend/pkg/prometheus"
	"github.com/alumnet-lab/backend/pkg/ratelimit"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	if err := s.loadMongo(); err != nil {
		return err
	}
	defer s.mongoClient.Disconnect(context.Background())

	if err := s.loadPublisher(); err != nil {
		return err
	}

	if err := s.loadStorage(); err != nil {
		return err
	}

	s.loadHub()
	s.loadRepos()
	s.loadDomains()
	if err := s.loadRouter(); err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx)
	subscriber, err := kafka.NewSubscriber(
		// Every process pushes to its own websocket clients, so it needs its
		// own consumer group.
		cfg.Kafka.ClientID+"-"+uuid.NewString(),
		[]string{cfg.Kafka.Addr},
		[]string{cfg.Notification.Topic},
		notification.NewSubscribeHandler(s.hub),
	)
	if err != nil {
		return err
	}
	subscriber.Subscribe(s.ctx)
	defer subscriber.Stop(s.ctx)

	s.server = &http.Server{
		Addr:              cfg.ApiServer.Address(),
		Handler:           middleware.AllowCors(cfg.ApiServer.AllowedOrigins, s.router.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.shutdownOnSignal()

	xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) shutdownOnSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
	}
}

func (s *srv) loadRepos() {
	s.tenantRepo = repository.NewTenantRepository()
	s.userRepo = repository.NewUserRepository()
	s.memberRepo = repository.NewMemberRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.activityRepo = repository.NewActivityRepository()
	s.redemptionRepo = repository.NewRedemptionRepository()
	s.badgeRepo = repository.NewBadgeRepository()
	s.userBadgeRepo = repository.NewUserBadgeRepository()
	s.fundRepo = repository.NewFundRepository()
	s.campaignRepo = repository.NewCampaignRepository()
	s.donationRepo = repository.NewDonationRepository()
	s.invitationRepo = repository.NewInvitationRepository()
	s.jobRepo = repository.NewJobRepository()
	s.jobApplicationRepo = repository.NewJobApplicationRepository()
	s.notificationRepo = repository.NewNotificationRepository()

	if s.mongoClient != nil {
		s.shareRepo = repository.NewShareRepository(
			s.mongoClient.Database(xcontext.Configs(s.ctx).Mongo.Database))
	}
}

func (s *srv) loadDomains() {
	s.roleVerifier = common.NewRoleVerifier(s.userRepo)
	s.notifier = notification.NewNotifier(s.notificationRepo, s.publisher)
	s.leaderboard = statistic.New(s.activityRepo, s.memberRepo, s.userRepo, s.redisClient)
	s.badgeManager = badge.NewManager(
		s.userBadgeRepo,
		badge.NewPointsBadgeScanner(s.badgeRepo, s.memberRepo),
		badge.NewTasksBadgeScanner(s.badgeRepo, s.memberRepo),
	)

	approver := domain.NewTaskApprover(s.activityRepo, s.memberRepo, s.leaderboard, s.badgeManager, s.notifier)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.tenantRepo, s.memberRepo)
	s.tenantDomain = domain.NewTenantDomain(s.tenantRepo, s.roleVerifier)
	s.rewardDomain = domain.NewRewardDomain(s.rewardRepo, s.roleVerifier)
	s.activityDomain = domain.NewActivityDomain(s.activityRepo, s.rewardRepo, approver)
	s.verificationDomain = domain.NewVerificationDomain(
		s.activityRepo, s.rewardRepo, s.roleVerifier, approver, s.notifier)
	s.redemptionDomain = domain.NewRedemptionDomain(
		s.rewardRepo, s.activityRepo, s.memberRepo, s.redemptionRepo, s.notifier)
	s.summaryDomain = domain.NewSummaryDomain(
		s.userRepo, s.memberRepo, s.activityRepo, s.redemptionRepo, s.userBadgeRepo, s.badgeRepo, s.redisClient)
	s.badgeDomain = domain.NewBadgeDomain(
		s.badgeRepo, s.userBadgeRepo, s.userRepo, s.memberRepo, s.roleVerifier, s.storage, s.notifier)
	s.statisticDomain = domain.NewStatisticDomain(
		s.activityRepo, s.memberRepo, s.redemptionRepo, s.rewardRepo, s.roleVerifier, s.leaderboard)
	s.fundDomain = domain.NewFundDomain(s.fundRepo, s.campaignRepo, s.donationRepo, s.roleVerifier)
	s.invitationDomain = domain.NewInvitationDomain(
		s.invitationRepo, s.tenantRepo, s.userRepo, s.memberRepo, s.roleVerifier, s.publisher)
	s.jobDomain = domain.NewJobDomain(s.jobRepo, s.jobApplicationRepo, s.storage, s.notifier)
	s.shareDomain = domain.NewShareDomain(s.shareRepo)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo, s.hub)
}

func (s *srv) loadRouter() error {
	cfg := xcontext.Configs(s.ctx)

	sqlDB, err := xcontext.DB(s.ctx).DB()
	if err != nil {
		return err
	}

	root := router.New(s.ctx)
	if err := root.SetTrustedProxies(cfg.ApiServer.TrustedProxies); err != nil {
		return err
	}

	root.Handle(http.MethodGet, "/health", http.HandlerFunc(healthHandle))
	root.Handle(http.MethodGet, "/metrics", prometheus.NewHandler(sqlDB))

	api := root.Group("/api/v1")
	api.After(middleware.Logger())
	api.After(middleware.Prometheus())
	if cfg.RateLimit.Enable {
		limiter, err := ratelimit.New(cfg.RateLimit.Rate, cfg.RateLimit.Burst, cfg.RateLimit.CacheSize)
		if err != nil {
			return err
		}
		api.Before(middleware.RateLimit(limiter))
	}

	// Public API
	publicRouter := api.Branch()
	{
		router.CREATE(publicRouter, "/auth/register", s.authDomain.Register)
		router.POST(publicRouter, "/auth/login", s.authDomain.Login)

		router.GET(publicRouter, "/invitations/token/:token", s.invitationDomain.Open)
		router.POST(publicRouter, "/invitations/token/:token/accept", s.invitationDomain.Accept)
	}

	authRouter := api.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		router.GET(authRouter, "/auth/me", s.authDomain.GetMe)

		// Tenant API
		router.CREATE(authRouter, "/tenants", s.tenantDomain.Create)
		router.GET(authRouter, "/tenants", s.tenantDomain.GetList)
		router.GET(authRouter, "/tenants/:id", s.tenantDomain.Get)
		router.PATCH(authRouter, "/tenants/:id", s.tenantDomain.Update)

		// Reward API
		router.GET(authRouter, "/rewards", s.rewardDomain.GetList)
		router.GET(authRouter, "/rewards/:id", s.rewardDomain.Get)
		router.CREATE(authRouter, "/rewards", s.rewardDomain.Create)
		router.PATCH(authRouter, "/rewards/:id", s.rewardDomain.Update)
		router.DELETE(authRouter, "/rewards/:id", s.rewardDomain.Delete)

		// Activity API
		router.POST(authRouter, "/rewards/:id/tasks/:task_id/progress", s.activityDomain.RecordProgress)
		router.GET(authRouter, "/rewards/:id/activities/me", s.activityDomain.GetMyRewardActivities)
		router.GET(authRouter, "/activities/me", s.activityDomain.GetMyActivities)
		router.POST(authRouter, "/activities/:id/resubmit", s.activityDomain.Resubmit)

		// Redemption API
		router.CREATE(authRouter, "/rewards/:id/claim", s.redemptionDomain.Claim)
		router.GET(authRouter, "/redemptions", s.redemptionDomain.GetList)

		// User API
		router.GET(authRouter, "/users/:id/tier", s.summaryDomain.GetTier)
		router.GET(authRouter, "/users/:id/summary", s.summaryDomain.GetSummary)
		router.GET(authRouter, "/users/:id/badges", s.badgeDomain.GetUserBadges)

		// Badge API
		router.GET(authRouter, "/badges", s.badgeDomain.GetList)
		router.CREATE(authRouter, "/badges", s.badgeDomain.Create)
		router.PATCH(authRouter, "/badges/:id", s.badgeDomain.Update)
		router.DELETE(authRouter, "/badges/:id", s.badgeDomain.Delete)
		router.POST(authRouter, "/badges/:id/icon", s.badgeDomain.UploadIcon)
		router.CREATE(authRouter, "/badges/:id/award", s.badgeDomain.Award)
		router.DELETE(authRouter, "/badges/:id/award/:user_id", s.badgeDomain.Revoke)

		// Leaderboard API
		router.GET(authRouter, "/leaderboard", s.statisticDomain.GetLeaderboard)
		router.GET(authRouter, "/leaderboard/rank", s.statisticDomain.GetMyRank)

		// Fund API
		router.CREATE(authRouter, "/funds", s.fundDomain.Create)
		router.GET(authRouter, "/funds", s.fundDomain.GetList)
		router.GET(authRouter, "/funds/:id", s.fundDomain.Get)
		router.PATCH(authRouter, "/funds/:id", s.fundDomain.Update)
		router.DELETE(authRouter, "/funds/:id", s.fundDomain.Delete)
		router.POST(authRouter, "/funds/:id/recompute", s.fundDomain.Recompute)
		router.CREATE(authRouter, "/funds/:id/campaigns", s.fundDomain.CreateCampaign)
		router.CREATE(authRouter, "/campaigns/:id/donations", s.fundDomain.Donate)
		router.GET(authRouter, "/campaigns/:id/donations", s.fundDomain.GetDonations)

		// Invitation API
		router.CREATE(authRouter, "/invitations", s.invitationDomain.Create)
		router.GET(authRouter, "/invitations", s.invitationDomain.GetList)
		router.POST(authRouter, "/invitations/:id/revoke", s.invitationDomain.Revoke)

		// Job API
		router.CREATE(authRouter, "/jobs", s.jobDomain.Create)
		router.GET(authRouter, "/jobs", s.jobDomain.GetList)
		router.POST(authRouter, "/jobs/resume", s.jobDomain.UploadResume)
		router.GET(authRouter, "/jobs/applications/me", s.jobDomain.GetMyApplications)
		router.POST(authRouter, "/jobs/:id/close", s.jobDomain.Close)
		router.CREATE(authRouter, "/jobs/:id/apply", s.jobDomain.Apply)
		router.GET(authRouter, "/jobs/:id/applications", s.jobDomain.GetApplications)
		router.POST(authRouter, "/applications/:id/review", s.jobDomain.Review)

		// Share API
		router.CREATE(authRouter, "/shares", s.shareDomain.Create)
		router.GET(authRouter, "/shares/stats", s.shareDomain.GetStats)

		// Notification API
		router.GET(authRouter, "/notifications", s.notificationDomain.GetList)
		router.POST(authRouter, "/notifications/read-all", s.notificationDomain.ReadAll)
		router.POST(authRouter, "/notifications/:id/read", s.notificationDomain.Read)
	}

	// Verification and analytics APIs are only for staff and admins.
	staffRouter := authRouter.Branch()
	staffRouter.Before(middleware.NewOnlyRoles(
		s.roleVerifier, entity.RoleStaff, entity.RoleAdmin, entity.RoleSuperAdmin).Middleware())
	{
		router.GET(staffRouter, "/verifications", s.verificationDomain.GetList)
		router.POST(staffRouter, "/verifications/:id", s.verificationDomain.Verify)

		router.GET(staffRouter, "/analytics/overview", s.statisticDomain.GetOverview)
		router.GET(staffRouter, "/analytics/points-distribution", s.statisticDomain.GetPointsDistribution)
		router.GET(staffRouter, "/analytics/task-completion", s.statisticDomain.GetTaskCompletion)
		router.GET(staffRouter, "/analytics/reward-claims", s.statisticDomain.GetRewardClaims)
		router.GET(staffRouter, "/analytics/departments", s.statisticDomain.GetDepartments)
		router.GET(staffRouter, "/analytics/users/:id/history", s.statisticDomain.GetUserHistory)
	}

	wsRouter := api.Branch()
	wsRouter.Before(middleware.NewAuthVerifier().WithQueryToken().Middleware())
	router.Stream(wsRouter, "/notifications/ws", s.notificationDomain.Stream)

	s.router = root
	return nil
}

func healthHandle(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
