package entity

type Tenant struct {
	Base
	Name   string
	Handle string `gorm:"unique"`
	Domain string
	Active bool `gorm:"default:true"`
}
