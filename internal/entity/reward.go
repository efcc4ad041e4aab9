package entity

import (
	"database/sql"
)

type RewardTask struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Target      int64  `json:"target"`
	Points      uint64 `json:"points"`
}

type Reward struct {
	Base
	TenantID             string `gorm:"index"`
	Tenant               Tenant `gorm:"foreignKey:TenantID"`
	Title                string
	Description          string
	Category             string `gorm:"index"`
	Cost                 uint64
	StartAt              sql.NullTime
	EndAt                sql.NullTime
	Active               bool
	Featured             bool
	RequiresVerification bool
	Tasks                Array[RewardTask]
	CreatedBy            string
}

func (r *Reward) FindTask(taskID string) (RewardTask, bool) {
	for _, t := range r.Tasks {
		if t.ID == taskID {
			return t, true
		}
	}

	return RewardTask{}, false
}
