package badge

import (
	"context"
	"errors"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// counterBadgeScanner compares a counter of the member against the criteria
// value of badges.
type counterBadgeScanner struct {
	criteria   entity.BadgeCriteriaType
	counter    func(*entity.Member) uint64
	badgeRepo  repository.BadgeRepository
	memberRepo repository.MemberRepository
}

// NewPointsBadgeScanner scans badges based on the lifetime earned points of
// user.
func NewPointsBadgeScanner(
	badgeRepo repository.BadgeRepository,
	memberRepo repository.MemberRepository,
) *counterBadgeScanner {
	return &counterBadgeScanner{
		criteria:   entity.BadgeCriteriaPoints,
		counter:    func(m *entity.Member) uint64 { return m.TotalPoints },
		badgeRepo:  badgeRepo,
		memberRepo: memberRepo,
	}
}

// NewTasksBadgeScanner scans badges based on the number of approved tasks of
// user.
func NewTasksBadgeScanner(
	badgeRepo repository.BadgeRepository,
	memberRepo repository.MemberRepository,
) *counterBadgeScanner {
	return &counterBadgeScanner{
		criteria:   entity.BadgeCriteriaTasks,
		counter:    func(m *entity.Member) uint64 { return m.CompletedTasks },
		badgeRepo:  badgeRepo,
		memberRepo: memberRepo,
	}
}

func (s *counterBadgeScanner) Criteria() entity.BadgeCriteriaType {
	return s.criteria
}

func (s *counterBadgeScanner) Scan(ctx context.Context, userID, tenantID string) ([]entity.Badge, error) {
	member, err := s.memberRepo.Get(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	badges, err := s.badgeRepo.GetList(ctx, repository.BadgeFilter{
		TenantID:     tenantID,
		CriteriaType: s.criteria,
		OnlyActive:   true,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges of %s: %v", s.criteria, err)
		return nil, errorx.Unknown
	}

	value := s.counter(member)
	suitableBadges := []entity.Badge{}
	for _, b := range badges {
		if b.CriteriaValue <= value {
			suitableBadges = append(suitableBadges, b)
		}
	}

	return suitableBadges, nil
}
