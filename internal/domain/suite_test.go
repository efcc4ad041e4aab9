package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/domain/badge"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

// suite holds a tenant with one user of each role and every repository wired
// to an in-memory database.
type suite struct {
	ctx context.Context

	tenant  entity.Tenant
	admin   entity.User
	staff   entity.User
	alumni  entity.User
	student entity.User

	tenantRepo     repository.TenantRepository
	userRepo       repository.UserRepository
	memberRepo     repository.MemberRepository
	rewardRepo     repository.RewardRepository
	activityRepo   repository.ActivityRepository
	redemptionRepo repository.RedemptionRepository
	badgeRepo      repository.BadgeRepository
	userBadgeRepo  repository.UserBadgeRepository
	invitationRepo repository.InvitationRepository

	roleVerifier *common.RoleVerifier
	badgeManager *badge.Manager
	leaderboard  *testutil.MockLeaderboard
	notifier     *testutil.MockNotifier
	publisher    *testutil.MockPublisher
	storage      *testutil.MockStorage
	approver     *TaskApprover
}

func newSuite(t *testing.T) *suite {
	ctx := testutil.NewMockContext()
	s := &suite{
		ctx:            ctx,
		tenantRepo:     repository.NewTenantRepository(),
		userRepo:       repository.NewUserRepository(),
		memberRepo:     repository.NewMemberRepository(),
		rewardRepo:     repository.NewRewardRepository(),
		activityRepo:   repository.NewActivityRepository(),
		redemptionRepo: repository.NewRedemptionRepository(),
		badgeRepo:      repository.NewBadgeRepository(),
		userBadgeRepo:  repository.NewUserBadgeRepository(),
		invitationRepo: repository.NewInvitationRepository(),
		leaderboard:    &testutil.MockLeaderboard{},
		notifier:       &testutil.MockNotifier{},
		publisher:      &testutil.MockPublisher{},
		storage:        &testutil.MockStorage{},
	}

	s.roleVerifier = common.NewRoleVerifier(s.userRepo)
	s.badgeManager = badge.NewManager(
		s.userBadgeRepo,
		badge.NewPointsBadgeScanner(s.badgeRepo, s.memberRepo),
		badge.NewTasksBadgeScanner(s.badgeRepo, s.memberRepo),
	)
	s.approver = NewTaskApprover(s.activityRepo, s.memberRepo, s.leaderboard, s.badgeManager, s.notifier)

	s.tenant = testutil.SampleTenant(t, ctx, entity.Tenant{Handle: "alpha"})
	s.admin = testutil.SampleUser(t, ctx, s.tenant.ID, entity.User{Role: entity.RoleAdmin})
	s.staff = testutil.SampleUser(t, ctx, s.tenant.ID, entity.User{Role: entity.RoleStaff})
	s.alumni = testutil.SampleUser(t, ctx, s.tenant.ID, entity.User{Role: entity.RoleAlumni})
	s.student = testutil.SampleUser(t, ctx, s.tenant.ID, entity.User{Role: entity.RoleStudent})
	return s
}

func (s *suite) as(user entity.User) context.Context {
	return testutil.WithUser(s.ctx, user)
}

func (s *suite) activityDomain() ActivityDomain {
	return NewActivityDomain(s.activityRepo, s.rewardRepo, s.approver)
}

func (s *suite) verificationDomain() VerificationDomain {
	return NewVerificationDomain(s.activityRepo, s.rewardRepo, s.roleVerifier, s.approver, s.notifier)
}

func (s *suite) redemptionDomain() RedemptionDomain {
	return NewRedemptionDomain(s.rewardRepo, s.activityRepo, s.memberRepo, s.redemptionRepo, s.notifier)
}

func (s *suite) member(t *testing.T, user entity.User) *entity.Member {
	member, err := s.memberRepo.Get(s.ctx, user.ID, user.TenantID)
	require.NoError(t, err)
	return member
}

func requireErrorCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()

	require.Error(t, err)
	var errx errorx.Error
	require.True(t, errors.As(err, &errx), "expected errorx.Error, got %T: %v", err, err)
	require.Equal(t, code, errx.Code, errx.Message)
}

func (s *suite) invitationDomain() InvitationDomain {
	return NewInvitationDomain(s.invitationRepo, s.tenantRepo, s.userRepo, s.memberRepo, s.roleVerifier, s.publisher)
}

func (s *suite) badgeDomain() BadgeDomain {
	return NewBadgeDomain(s.badgeRepo, s.userBadgeRepo, s.userRepo, s.memberRepo, s.roleVerifier, s.storage, s.notifier)
}

func (s *suite) rewardDomain() RewardDomain {
	return NewRewardDomain(s.rewardRepo, s.roleVerifier)
}

func (s *suite) authDomain() AuthDomain {
	return NewAuthDomain(s.userRepo, s.tenantRepo, s.memberRepo)
}

func (s *suite) tenantDomain() TenantDomain {
	return NewTenantDomain(s.tenantRepo, s.roleVerifier)
}
