package entity

import (
	"database/sql"

	"github.com/alumnet-lab/backend/pkg/enum"
)

type ActivityStatus string

var (
	ActivityInProgress          = enum.New(ActivityStatus("in_progress"))
	ActivityPendingVerification = enum.New(ActivityStatus("pending_verification"))
	ActivityApproved            = enum.New(ActivityStatus("approved"))
	ActivityRejected            = enum.New(ActivityStatus("rejected"))
	ActivityClaimed             = enum.New(ActivityStatus("claimed"))
)

// UserTaskActivity is the progress of a user on one task of a reward. There is
// at most one activity per (user, reward, task) and it is never deleted.
type UserTaskActivity struct {
	Base
	RewardID string `gorm:"uniqueIndex:idx_user_reward_task"`
	Reward   Reward `gorm:"foreignKey:RewardID"`
	TaskID   string `gorm:"uniqueIndex:idx_user_reward_task"`
	UserID   string `gorm:"uniqueIndex:idx_user_reward_task"`
	User     User   `gorm:"foreignKey:UserID"`
	TenantID string `gorm:"index:idx_activity_tenant_status"`
	Amount   int64
	// Points is set when the activity is approved.
	Points      uint64
	Status      ActivityStatus `gorm:"index:idx_activity_tenant_status"`
	VerifierID  sql.NullString
	VerifiedAt  sql.NullTime
	Reason      string
	SubmittedAt sql.NullTime
	ClaimedAt   sql.NullTime
}
