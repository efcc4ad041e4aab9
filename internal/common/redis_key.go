package common

import (
	"fmt"
)

func RedisKeyPointLeaderboard(tenantID, period string) string {
	return fmt.Sprintf("%s:point:%s", tenantID, period)
}

func RedisKeyTaskLeaderboard(tenantID, period string) string {
	return fmt.Sprintf("%s:task:%s", tenantID, period)
}

func RedisKeyUserSummary(tenantID, userID string) string {
	return fmt.Sprintf("summary:%s:%s", tenantID, userID)
}
