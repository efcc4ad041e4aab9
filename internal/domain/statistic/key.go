package statistic

import (
	"fmt"

	"github.com/alumnet-lab/backend/internal/common"
)

const (
	OrderedByPoint = "point"
	OrderedByTask  = "task"
)

func redisKeyLeaderboard(orderedBy, tenantID string, period Period) (string, error) {
	switch orderedBy {
	case OrderedByPoint, "":
		return common.RedisKeyPointLeaderboard(tenantID, period.Key()), nil
	case OrderedByTask:
		return common.RedisKeyTaskLeaderboard(tenantID, period.Key()), nil
	}

	return "", fmt.Errorf("expected ordered by point or task, but got %s", orderedBy)
}
