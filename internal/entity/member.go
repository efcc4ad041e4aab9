package entity

import (
	"time"
)

// Member is the point ledger of a user in a tenant.
type Member struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TenantID string `gorm:"primaryKey"`
	Tenant   Tenant `gorm:"foreignKey:TenantID"`

	// Points is the spendable balance, TotalPoints is the lifetime earned
	// points and never decreases.
	Points         uint64
	TotalPoints    uint64
	CompletedTasks uint64
	Redemptions    uint64
}
