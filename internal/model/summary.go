package model

type GetUserTierRequest struct {
	UserID   string `uri:"id"`
	TenantID string `form:"tenant_id"`
}

type GetUserTierResponse struct {
	UserID           string `json:"user_id"`
	TotalPoints      uint64 `json:"total_points"`
	Tier             string `json:"tier"`
	NextTier         string `json:"next_tier,omitempty"`
	PointsToNextTier uint64 `json:"points_to_next_tier"`
}

type ActivityStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Amount int64  `json:"amount"`
}

type GetUserSummaryRequest struct {
	UserID   string `uri:"id"`
	TenantID string `form:"tenant_id"`
}

type GetUserSummaryResponse struct {
	UserID         string                `json:"user_id"`
	TenantID       string                `json:"tenant_id"`
	Balance        uint64                `json:"balance"`
	TotalPoints    uint64                `json:"total_points"`
	CompletedTasks uint64                `json:"completed_tasks"`
	Tier           string                `json:"tier"`
	Activities     []ActivityStatusCount `json:"activities"`
	TotalAmount    int64                 `json:"total_amount"`
	Redemptions    int64                 `json:"redemptions"`
	PointsSpent    uint64                `json:"points_spent"`
	Badges         []UserBadge           `json:"badges"`
}
