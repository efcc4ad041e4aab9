package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient keeps sorted sets and objects in memory. TTLs are recorded
// but never expire.
type MockRedisClient struct {
	mu      sync.Mutex
	zsets   map[string]map[string]float64
	objects map[string][]byte
	TTLs    map[string]time.Duration

	// ExistErr makes every Exist call fail.
	ExistErr error
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		zsets:   map[string]map[string]float64{},
		objects: map[string][]byte{},
		TTLs:    map[string]time.Duration{},
	}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ExistErr != nil {
		return false, m.ExistErr
	}

	_, isZSet := m.zsets[key]
	_, isObj := m.objects[key]
	return isZSet || isObj, nil
}

func (m *MockRedisClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TTLs[key] = ttl
	return nil
}

func (m *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	member, ok := z.Member.(string)
	if !ok {
		return errors.New("member must be a string")
	}

	if m.zsets[key] == nil {
		m.zsets[key] = map[string]float64{}
	}
	m.zsets[key][member] = z.Score
	return nil
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.zsets[key] == nil {
		m.zsets[key] = map[string]float64{}
	}
	m.zsets[key][member] += float64(incr)
	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := m.sorted(key)
	if offset >= len(sorted) {
		return []redis.Z{}, nil
	}

	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}

	return sorted[offset:end], nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, z := range m.sorted(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = b
	m.TTLs[key] = ttl
	return nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	b, ok := m.objects[key]
	m.mu.Unlock()

	if !ok {
		return redis.Nil
	}

	return json.Unmarshal(b, v)
}

// Score returns the score of member in the sorted set key.
func (m *MockRedisClient) Score(key, member string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	score, ok := m.zsets[key][member]
	return score, ok
}

func (m *MockRedisClient) sorted(key string) []redis.Z {
	result := []redis.Z{}
	for member, score := range m.zsets[key] {
		result = append(result, redis.Z{Member: member, Score: score})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}

		return result[i].Member.(string) > result[j].Member.(string)
	})

	return result
}
