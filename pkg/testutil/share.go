package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/internal/repository"
)

// MockShareRepository is an in-memory share log.
type MockShareRepository struct {
	mu     sync.Mutex
	shares []entity.Share
}

func (m *MockShareRepository) Insert(ctx context.Context, share *entity.Share) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shares = append(m.shares, *share)
	return nil
}

func (m *MockShareRepository) CountByPlatform(
	ctx context.Context, tenantID, postID string,
) ([]repository.PlatformCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[entity.SharePlatform]int64{}
	for _, s := range m.shares {
		if s.TenantID != tenantID || (postID != "" && s.PostID != postID) {
			continue
		}
		counts[s.Platform]++
	}

	result := []repository.PlatformCount{}
	for platform, count := range counts {
		result = append(result, repository.PlatformCount{Platform: platform, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}

		return result[i].Platform < result[j].Platform
	})

	return result, nil
}
