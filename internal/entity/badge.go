package entity

import (
	"database/sql"

	"github.com/alumnet-lab/backend/pkg/enum"
)

type BadgeCriteriaType string

var (
	BadgeCriteriaManual = enum.New(BadgeCriteriaType("manual"))
	BadgeCriteriaPoints = enum.New(BadgeCriteriaType("points"))
	BadgeCriteriaTasks  = enum.New(BadgeCriteriaType("tasks"))
)

type Badge struct {
	Base
	// TenantID is null for badges available in every tenant.
	TenantID            sql.NullString `gorm:"index"`
	Name                string         `gorm:"unique"`
	Category            string
	Icon                string
	Color               string
	CriteriaType        BadgeCriteriaType
	CriteriaValue       uint64
	CriteriaDescription string
	Points              uint64
	Active              bool
	Rare                bool
	MaxRecipients       uint64
	CurrentRecipients   uint64
}
