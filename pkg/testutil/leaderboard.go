package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/alumnet-lab/backend/internal/domain/statistic"
	"github.com/alumnet-lab/backend/internal/model"
)

type LeaderboardChange struct {
	Points     uint64
	Tasks      int64
	VerifiedAt time.Time
	UserID     string
	TenantID   string
}

type MockLeaderboard struct {
	GetLeaderboardFunc func(
		ctx context.Context,
		tenantID, orderedBy string,
		period statistic.Period,
		offset, limit int,
	) ([]model.UserStatistic, error)

	GetRankFunc func(
		ctx context.Context,
		userID, tenantID, orderedBy string,
		period statistic.Period,
	) (uint64, error)

	mu      sync.Mutex
	changes []LeaderboardChange
}

func (m *MockLeaderboard) GetLeaderboard(
	ctx context.Context,
	tenantID, orderedBy string,
	period statistic.Period,
	offset, limit int,
) ([]model.UserStatistic, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, tenantID, orderedBy, period, offset, limit)
	}

	return []model.UserStatistic{}, nil
}

func (m *MockLeaderboard) GetRank(
	ctx context.Context,
	userID, tenantID, orderedBy string,
	period statistic.Period,
) (uint64, error) {
	if m.GetRankFunc != nil {
		return m.GetRankFunc(ctx, userID, tenantID, orderedBy, period)
	}

	return 0, nil
}

func (m *MockLeaderboard) ChangeLeaderboard(
	ctx context.Context,
	points uint64,
	tasks int64,
	verifiedAt time.Time,
	userID, tenantID string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.changes = append(m.changes, LeaderboardChange{
		Points:     points,
		Tasks:      tasks,
		VerifiedAt: verifiedAt,
		UserID:     userID,
		TenantID:   tenantID,
	})
	return nil
}

func (m *MockLeaderboard) Changes() []LeaderboardChange {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]LeaderboardChange{}, m.changes...)
}
