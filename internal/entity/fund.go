package entity

import (
	"github.com/alumnet-lab/backend/pkg/enum"
)

type FundStatus string

var (
	FundActive    = enum.New(FundStatus("active"))
	FundArchived  = enum.New(FundStatus("archived"))
	FundSuspended = enum.New(FundStatus("suspended"))
)

// Amounts of funds, campaigns and donations are in minor currency units.
type Fund struct {
	Base
	TenantID    string `gorm:"index"`
	Name        string
	Description string
	CreatedBy   string
	TotalRaised int64
	Status      FundStatus
}

type CampaignStatus string

var (
	CampaignActive = enum.New(CampaignStatus("active"))
	CampaignClosed = enum.New(CampaignStatus("closed"))
)

type Campaign struct {
	Base
	TenantID     string `gorm:"index"`
	FundID       string `gorm:"index"`
	Fund         Fund   `gorm:"foreignKey:FundID"`
	Title        string
	Description  string
	GoalAmount   int64
	RaisedAmount int64
	Status       CampaignStatus
}

type Donation struct {
	Base
	TenantID   string   `gorm:"index"`
	CampaignID string   `gorm:"index"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`
	DonorID    string
	Amount     int64
	Reference  string `gorm:"unique"`
}
