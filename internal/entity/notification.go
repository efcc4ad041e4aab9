package entity

import (
	"database/sql"
)

type Notification struct {
	Base
	TenantID string `gorm:"index"`
	UserID   string `gorm:"index"`
	Type     string
	Title    string
	Body     string
	Data     Map
	ReadAt   sql.NullTime
}
