package entity

type Redemption struct {
	Base
	TenantID    string `gorm:"index"`
	RewardID    string `gorm:"index"`
	Reward      Reward `gorm:"foreignKey:RewardID"`
	UserID      string `gorm:"index"`
	User        User   `gorm:"foreignKey:UserID"`
	Cost        uint64
	VoucherCode string `gorm:"unique"`
	IssuerID    string
	Note        string
}
