package model

import "github.com/alumnet-lab/backend/pkg/router"

type GetLeaderboardRequest struct {
	TenantID  string `form:"tenant_id"`
	Period    string `form:"period"`
	OrderedBy string `form:"ordered_by"`
	Offset    int    `form:"offset"`
	Limit     int    `form:"limit"`
}

type GetLeaderboardResponse struct {
	Leaderboard []UserStatistic `json:"leaderboard"`
}

type GetMyLeaderboardRankRequest struct {
	TenantID  string `form:"tenant_id"`
	Period    string `form:"period"`
	OrderedBy string `form:"ordered_by"`
}

type GetMyLeaderboardRankResponse struct {
	Rank uint64 `json:"rank"`
}

type PointBucket struct {
	Bucket  string `json:"bucket"`
	Members int64  `json:"members"`
}

type TaskCompletion struct {
	RewardID    string `json:"reward_id"`
	RewardTitle string `json:"reward_title"`
	TaskID      string `json:"task_id"`
	TaskTitle   string `json:"task_title"`
	Approved    int64  `json:"approved"`
	Pending     int64  `json:"pending"`
	Rejected    int64  `json:"rejected"`
}

type RewardClaim struct {
	RewardID string `json:"reward_id"`
	Title    string `json:"title"`
	Claims   int64  `json:"claims"`
	Spent    uint64 `json:"spent"`
}

type DepartmentStatistic struct {
	Department  string `json:"department"`
	Members     int64  `json:"members"`
	TotalPoints uint64 `json:"total_points"`
	Tasks       uint64 `json:"tasks"`
}

type GetAnalyticsRequest struct {
	TenantID string `form:"tenant_id"`
}

type GetPointsDistributionResponse struct {
	Buckets []PointBucket `json:"buckets"`
}

type GetTaskCompletionResponse struct {
	Tasks []TaskCompletion `json:"tasks"`
}

type GetRewardClaimsResponse struct {
	Rewards []RewardClaim `json:"rewards"`
}

type GetDepartmentStatisticResponse struct {
	Departments []DepartmentStatistic `json:"departments"`
}

type GetAnalyticsOverviewResponse struct {
	Buckets     []PointBucket         `json:"buckets"`
	Tasks       []TaskCompletion      `json:"tasks"`
	Rewards     []RewardClaim         `json:"rewards"`
	Departments []DepartmentStatistic `json:"departments"`
}

type GetUserHistoryRequest struct {
	UserID   string `uri:"id"`
	TenantID string `form:"tenant_id"`
	Offset   int    `form:"offset"`
	Limit    int    `form:"limit"`
}

type GetUserHistoryResponse struct {
	router.Page `json:"-"`
	Activities  []Activity `json:"activities"`
}
