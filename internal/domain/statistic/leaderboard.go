package statistic

import (
	"context"
	"time"

	"github.com/alumnet-lab/backend/internal/common"
	"github.com/alumnet-lab/backend/internal/model"
	"github.com/alumnet-lab/backend/internal/repository"
	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"github.com/alumnet-lab/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// leaderboardTTL bounds the drift between the cached leaderboard and the
// database.
const leaderboardTTL = time.Hour

type Leaderboard interface {
	GetLeaderboard(
		ctx context.Context,
		tenantID, orderedBy string,
		period Period,
		offset, limit int,
	) ([]model.UserStatistic, error)

	GetRank(
		ctx context.Context,
		userID, tenantID, orderedBy string,
		period Period,
	) (uint64, error)

	// ChangeLeaderboard adds points and tasks of user to every period
	// containing verifiedAt. Leaderboards which are not cached yet are left
	// untouched, they will be loaded from database later.
	ChangeLeaderboard(
		ctx context.Context,
		points uint64,
		tasks int64,
		verifiedAt time.Time,
		userID, tenantID string,
	) error
}

type leaderboard struct {
	activityRepo repository.ActivityRepository
	memberRepo   repository.MemberRepository
	userRepo     repository.UserRepository
	redisClient  xredis.Client
}

func New(
	activityRepo repository.ActivityRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{
		activityRepo: activityRepo,
		memberRepo:   memberRepo,
		userRepo:     userRepo,
		redisClient:  redisClient,
	}
}

func (l *leaderboard) GetLeaderboard(
	ctx context.Context,
	tenantID string,
	orderedBy string,
	period Period,
	offset, limit int,
) ([]model.UserStatistic, error) {
	key, err := l.ensureLoaded(ctx, tenantID, orderedBy, period)
	if err != nil {
		return nil, err
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, z := range results {
		if member, ok := z.Member.(string); ok {
			userIDs = append(userIDs, member)
		}
	}

	users, err := l.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users of leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	names := map[string]string{}
	for _, u := range users {
		names[u.ID] = u.Name
	}

	leaderboard := []model.UserStatistic{}
	for i, z := range results {
		userID, _ := z.Member.(string)
		leaderboard = append(leaderboard, model.UserStatistic{
			User:        model.User{ID: userID, TenantID: tenantID, Name: names[userID]},
			Value:       int(z.Score),
			CurrentRank: offset + i + 1,
		})
	}

	return leaderboard, nil
}

func (l *leaderboard) GetRank(
	ctx context.Context,
	userID string,
	tenantID string,
	orderedBy string,
	period Period,
) (uint64, error) {
	key, err := l.ensureLoaded(ctx, tenantID, orderedBy, period)
	if err != nil {
		return 0, err
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangeLeaderboard(
	ctx context.Context,
	points uint64,
	tasks int64,
	verifiedAt time.Time,
	userID, tenantID string,
) error {
	for _, name := range []string{PeriodWeek, PeriodMonth, PeriodAll} {
		period, err := ToPeriodWithTime(name, verifiedAt)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Invalid period: %v", err)
			return errorx.Unknown
		}

		if err := l.changeLeaderboard(ctx, int64(points), userID, tenantID, OrderedByPoint, period); err != nil {
			return err
		}

		if err := l.changeLeaderboard(ctx, tasks, userID, tenantID, OrderedByTask, period); err != nil {
			return err
		}
	}

	return nil
}

func (l *leaderboard) changeLeaderboard(
	ctx context.Context,
	value int64,
	userID, tenantID string,
	orderedBy string,
	period Period,
) error {
	if value == 0 {
		return nil
	}

	key, err := redisKeyLeaderboard(orderedBy, tenantID, period)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid ordered by field: %v", err)
		return errorx.New(errorx.BadRequest, "Invalid ordered by field")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, no need to update.
	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, key, value, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
	}

	return nil
}

func (l *leaderboard) ensureLoaded(
	ctx context.Context, tenantID, orderedBy string, period Period,
) (string, error) {
	key, err := redisKeyLeaderboard(orderedBy, tenantID, period)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid ordered by field: %v", err)
		return "", errorx.New(errorx.BadRequest, "Invalid ordered by field")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return "", errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadLeaderboardFromDB(ctx, tenantID, period); err != nil {
			return "", err
		}
	}

	return key, nil
}

func (l *leaderboard) loadLeaderboardFromDB(ctx context.Context, tenantID string, period Period) error {
	var stats []repository.UserStatistic
	if period.IsAllTime() {
		members, err := l.memberRepo.GetListByTenantID(ctx, tenantID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot load members from database: %v", err)
			return errorx.Unknown
		}

		for _, m := range members {
			stats = append(stats, repository.UserStatistic{
				UserID: m.UserID,
				Points: m.TotalPoints,
				Tasks:  m.CompletedTasks,
			})
		}
	} else {
		var err error
		stats, err = l.activityRepo.Statistic(ctx, tenantID, period.Start(), period.End())
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot load statistic from database: %v", err)
			return errorx.Unknown
		}
	}

	pointKey := common.RedisKeyPointLeaderboard(tenantID, period.Key())
	taskKey := common.RedisKeyTaskLeaderboard(tenantID, period.Key())
	for _, s := range stats {
		err := l.redisClient.ZAdd(ctx, pointKey, redis.Z{Member: s.UserID, Score: float64(s.Points)})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}

		err = l.redisClient.ZAdd(ctx, taskKey, redis.Z{Member: s.UserID, Score: float64(s.Tasks)})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	for _, key := range []string{pointKey, taskKey} {
		if err := l.redisClient.Expire(ctx, key, leaderboardTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot set expiration of %s: %v", key, err)
		}
	}

	return nil
}
