package entity

import (
	"github.com/alumnet-lab/backend/pkg/enum"
)

type UserRole string

var (
	RoleSuperAdmin = enum.New(UserRole("super_admin"))
	RoleAdmin      = enum.New(UserRole("admin"))
	RoleStaff      = enum.New(UserRole("staff"))
	RoleAlumni     = enum.New(UserRole("alumni"))
	RoleStudent    = enum.New(UserRole("student"))
)

var (
	AdminRoles    = []UserRole{RoleSuperAdmin, RoleAdmin}
	ReviewerRoles = []UserRole{RoleSuperAdmin, RoleAdmin, RoleStaff}
)

type User struct {
	Base
	TenantID       string `gorm:"index"`
	Tenant         Tenant `gorm:"foreignKey:TenantID"`
	Email          string `gorm:"unique"`
	Name           string
	Password       string
	Role           UserRole
	Department     string
	GraduationYear int
}
