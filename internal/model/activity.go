package model

import "github.com/alumnet-lab/backend/pkg/router"

type RecordProgressRequest struct {
	RewardID string         `uri:"id"`
	TaskID   string         `uri:"task_id"`
	Amount   int64          `json:"amount"`
	Context  map[string]any `json:"context"`
}

type RecordProgressResponse struct {
	Activity Activity `json:"activity"`
}

type GetMyRewardActivitiesRequest struct {
	RewardID string `uri:"id"`
}

type GetMyRewardActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}

type GetMyActivitiesRequest struct {
	Status string `form:"status"`
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
}

type GetMyActivitiesResponse struct {
	router.Page `json:"-"`
	Activities  []Activity `json:"activities"`
}

type GetVerificationsRequest struct {
	TenantID string `form:"tenant_id"`
	RewardID string `form:"reward_id"`
	Offset   int    `form:"offset"`
	Limit    int    `form:"limit"`
}

type GetVerificationsResponse struct {
	router.Page `json:"-"`
	Activities  []Activity `json:"activities"`
}

type VerifyTaskRequest struct {
	ID     string `uri:"id"`
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type VerifyTaskResponse struct {
	Activity Activity `json:"activity"`
}

type ResubmitTaskRequest struct {
	ID string `uri:"id"`
}

type ResubmitTaskResponse struct {
	Activity Activity `json:"activity"`
}
