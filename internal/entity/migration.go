package entity

import (
	"context"

	"github.com/alumnet-lab/backend/pkg/xcontext"
)

type Migration struct {
	Version int `gorm:"primaryKey;autoIncrement:false"`
}

// MigrateTable creates every table with the latest schema.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Tenant{},
		&User{},
		&Member{},
		&Reward{},
		&UserTaskActivity{},
		&Redemption{},
		&Badge{},
		&UserBadge{},
		&Fund{},
		&Campaign{},
		&Donation{},
		&Invitation{},
		&Job{},
		&JobApplication{},
		&Notification{},
		&Migration{},
	)
}
