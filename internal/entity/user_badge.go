package entity

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserBadge struct {
	ID        string `gorm:"primarykey"`
	UserID    string `gorm:"uniqueIndex:idx_user_badge"`
	User      User   `gorm:"foreignKey:UserID"`
	BadgeID   string `gorm:"uniqueIndex:idx_user_badge"`
	Badge     Badge  `gorm:"foreignKey:BadgeID"`
	TenantID  sql.NullString
	AwardedAt time.Time
	AwardedBy string
	Reason    string
	Metadata  Map
}

// ErrBadgeFull is returned when the badge already reached its max recipients.
var ErrBadgeFull = errors.New("badge reached its max recipients")

// AfterCreate runs in the same transaction as the insert, so a failed insert
// never changes the counter.
func (ub *UserBadge) AfterCreate(tx *gorm.DB) error {
	result := tx.Model(&Badge{}).
		Where("id=? AND (max_recipients=0 OR current_recipients<max_recipients)", ub.BadgeID).
		Update("current_recipients", gorm.Expr("current_recipients+1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBadgeFull
	}

	return nil
}

func (ub *UserBadge) AfterDelete(tx *gorm.DB) error {
	if ub.BadgeID == "" {
		return errors.New("deleted user badge must carry its badge id")
	}

	return tx.Model(&Badge{}).
		Where("id=? AND current_recipients>0", ub.BadgeID).
		Update("current_recipients", gorm.Expr("current_recipients-1")).Error
}
