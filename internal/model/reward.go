package model

import (
	"time"

	"github.com/alumnet-lab/backend/pkg/router"
)

type GetRewardsRequest struct {
	TenantID        string `form:"tenant_id"`
	Category        string `form:"category"`
	Q               string `form:"q"`
	Featured        *bool  `form:"featured"`
	IncludeInactive bool   `form:"include_inactive"`
	Offset          int    `form:"offset"`
	Limit           int    `form:"limit"`
}

type GetRewardsResponse struct {
	router.Page `json:"-"`
	Rewards     []Reward `json:"rewards"`
}

type GetRewardRequest struct {
	ID string `uri:"id"`
}

type GetRewardResponse struct {
	Reward Reward `json:"reward"`
}

type RewardTaskInput struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Target      int64  `json:"target"`
	Points      uint64 `json:"points"`
}

type CreateRewardRequest struct {
	TenantID             string            `json:"tenant_id"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	Category             string            `json:"category"`
	Cost                 uint64            `json:"cost"`
	StartAt              *time.Time        `json:"start_at"`
	EndAt                *time.Time        `json:"end_at"`
	Active               *bool             `json:"active"`
	Featured             bool              `json:"featured"`
	RequiresVerification bool              `json:"requires_verification"`
	Tasks                []RewardTaskInput `json:"tasks"`
}

type CreateRewardResponse struct {
	ID string `json:"id"`
}

type UpdateRewardRequest struct {
	ID                   string     `uri:"id"`
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Category             *string    `json:"category"`
	Cost                 *uint64    `json:"cost"`
	StartAt              *time.Time `json:"start_at"`
	EndAt                *time.Time `json:"end_at"`
	ClearSchedule        bool       `json:"clear_schedule"`
	Active               *bool      `json:"active"`
	Featured             *bool      `json:"featured"`
	RequiresVerification *bool      `json:"requires_verification"`

	// Tasks replaces the task list when it is not nil. Tasks with an id keep
	// it, new tasks get a generated id.
	Tasks []RewardTask `json:"tasks"`
}

type UpdateRewardResponse struct{}

type DeleteRewardRequest struct {
	ID string `uri:"id"`
}

type DeleteRewardResponse struct{}
