package badge

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
)

// SystemAwarder is the awarder of badges given by scanners.
const SystemAwarder = "system"

type Manager struct {
	// This field is only written at initialization. After that, it is readonly.
	// So no need to use sync map here.
	badgeScanners map[entity.BadgeCriteriaType]BadgeScanner

	userBadgeRepo repository.UserBadgeRepository
}

func NewManager(
	userBadgeRepo repository.UserBadgeRepository,
	badgeScanners ...BadgeScanner,
) *Manager {
	manager := &Manager{
		userBadgeRepo: userBadgeRepo,
		badgeScanners: make(map[entity.BadgeCriteriaType]BadgeScanner),
	}

	for _, b := range badgeScanners {
		manager.badgeScanners[b.Criteria()] = b
	}

	return manager
}

func (m *Manager) GetAllCriteria() []entity.BadgeCriteriaType {
	return common.MapKeys(m.badgeScanners)
}

func (m *Manager) WithCriteria(criteria ...entity.BadgeCriteriaType) *contextManager {
	return &contextManager{manager: m, criteria: criteria}
}

type contextManager struct {
	manager  *Manager
	criteria []entity.BadgeCriteriaType
}

// ScanAndGive awards every suitable badge which user hasn't received yet and
// returns them. Badges which are full are skipped.
func (c *contextManager) ScanAndGive(ctx context.Context, userID, tenantID string) ([]entity.Badge, error) {
	owned, err := c.manager.userBadgeRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges of user: %v", err)
		return nil, errorx.Unknown
	}

	ownedIDs := map[string]bool{}
	for _, ub := range owned {
		ownedIDs[ub.BadgeID] = true
	}

	awarded := []entity.Badge{}
	for _, criteria := range c.criteria {
		badgeScanner, ok := c.manager.badgeScanners[criteria]
		if !ok {
			xcontext.Logger(ctx).Errorf("Not found badge scanner %s", criteria)
			return nil, errorx.Unknown
		}

		suitableBadges, err := badgeScanner.Scan(ctx, userID, tenantID)
		if err != nil {
			return nil, err
		}

		for _, b := range suitableBadges {
			if ownedIDs[b.ID] {
				continue
			}

			err := c.manager.userBadgeRepo.Create(ctx, &entity.UserBadge{
				ID:        uuid.NewString(),
				UserID:    userID,
				BadgeID:   b.ID,
				TenantID:  sql.NullString{Valid: true, String: tenantID},
				AwardedAt: time.Now(),
				AwardedBy: SystemAwarder,
				Reason:    b.CriteriaDescription,
			})
			if err != nil {
				if errors.Is(err, entity.ErrBadgeFull) {
					xcontext.Logger(ctx).Debugf("Badge %s is full", b.ID)
					continue
				}

				// Another request may award the same badge at the same time.
				if _, getErr := c.manager.userBadgeRepo.Get(ctx, userID, b.ID); getErr == nil {
					continue
				}

				xcontext.Logger(ctx).Errorf("Cannot give badge to user: %v", err)
				return nil, errorx.Unknown
			}

			ownedIDs[b.ID] = true
			awarded = append(awarded, b)
		}
	}

	return awarded, nil
}
