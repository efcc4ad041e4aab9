package main

import (
	"context"
	"net/http"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/domain"
	"github.com/alumnet-lab/backend/internal/domain/badge"
	"github.com/alumnet-lab/backend/internal/domain/notification"
	"github.com/alumnet-lab/backend/internal/domain/statistic"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/pubsub"
	"github.com/alumnet-lab/backend/pkg/router"
	"github.com/alumnet-lab/backend/pkg/storage"
	"github.com/alumnet-lab/backend/pkg/ws"
	"github.com/alumnet-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

type srv struct {
	app *cli.App
	ctx context.Context

	tenantRepo         repository.TenantRepository
	userRepo           repository.UserRepository
	memberRepo         repository.MemberRepository
	rewardRepo         repository.RewardRepository
	activityRepo       repository.ActivityRepository
	redemptionRepo     repository.RedemptionRepository
	badgeRepo          repository.BadgeRepository
	userBadgeRepo      repository.UserBadgeRepository
	fundRepo           repository.FundRepository
	campaignRepo       repository.CampaignRepository
	donationRepo       repository.DonationRepository
	invitationRepo     repository.InvitationRepository
	jobRepo            repository.JobRepository
	jobApplicationRepo repository.JobApplicationRepository
	notificationRepo   repository.NotificationRepository
	shareRepo          repository.ShareRepository

	authDomain         domain.AuthDomain
	tenantDomain       domain.TenantDomain
	rewardDomain       domain.RewardDomain
	activityDomain     domain.ActivityDomain
	verificationDomain domain.VerificationDomain
	redemptionDomain   domain.RedemptionDomain
	summaryDomain      domain.SummaryDomain
	badgeDomain        domain.BadgeDomain
	statisticDomain    domain.StatisticDomain
	fundDomain         domain.FundDomain
	invitationDomain   domain.InvitationDomain
	jobDomain          domain.JobDomain
	shareDomain        domain.ShareDomain
	notificationDomain domain.NotificationDomain

	roleVerifier *common.RoleVerifier
	badgeManager *badge.Manager
	leaderboard  statistic.Leaderboard
	notifier     notification.Notifier

	mongoClient *mongo.Client
	redisClient xredis.Client
	publisher   pubsub.Publisher
	storage     storage.Storage
	hub         *ws.Hub

	router *router.Router
	server *http.Server
}
